package scanner

import (
	"strings"

	"psnreval/matcher"
)

// DefaultExtensions are the image extensions considered when none are given
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// NormalizeExtensions lowercases extensions and enforces a leading dot.
// Blank entries are dropped; an empty result falls back to ".png".
func NormalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	if len(normalized) == 0 {
		return []string{".png"}
	}
	return normalized
}

// ExtensionSet builds the lookup set used by CollectImages
func ExtensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range NormalizeExtensions(exts) {
		set[ext] = true
	}
	return set
}

// HasAllowedExtension checks the lowercased suffix of path against the allowed set
func HasAllowedExtension(path string, allowed map[string]bool) bool {
	_, suffix := matcher.SplitName(path)
	return allowed[strings.ToLower(suffix)]
}
