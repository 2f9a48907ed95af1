// Package matcher derives match keys from file names and pairs the keys of
// two directory scans.
package matcher

import (
	"path/filepath"
	"strings"
)

// KeyBuilder derives the match key for a file path
type KeyBuilder func(path string) string

// SplitName splits the final element of path into stem and suffix.
// A leading dot belongs to the stem, so ".hidden" has no suffix,
// and a name ending in "." has no suffix either.
func SplitName(path string) (stem, suffix string) {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

// TrimSuffixSegments drops the last count delimiter-separated segments from stem.
// The stem is returned unchanged when trimming is disabled, when it has no more
// than count segments, or when the trimmed result would be empty.
func TrimSuffixSegments(stem, delimiter string, count int) string {
	if count <= 0 || delimiter == "" {
		return stem
	}
	segments := strings.Split(stem, delimiter)
	if len(segments) <= count {
		return stem
	}
	trimmed := strings.Join(segments[:len(segments)-count], delimiter)
	if trimmed == "" {
		return stem
	}
	return trimmed
}

// NewKeyBuilder returns a KeyBuilder that trims dropSuffix segments from the
// stem and appends the lowercased suffix
func NewKeyBuilder(dropSuffix int, delimiter string, ignoreCase bool) KeyBuilder {
	return func(path string) string {
		stem, suffix := SplitName(path)
		key := TrimSuffixSegments(stem, delimiter, dropSuffix) + strings.ToLower(suffix)
		if ignoreCase {
			key = strings.ToLower(key)
		}
		return key
	}
}
