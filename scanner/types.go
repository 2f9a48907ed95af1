package scanner

import "psnreval/matcher"

// CollectOptions defines the options for collecting images from one directory
type CollectOptions struct {
	Extensions map[string]bool // lowercased, with leading dot
	Recursive  bool
	KeyBuilder matcher.KeyBuilder
}

// CollectResult holds the files found in one directory, keyed by match key
type CollectResult struct {
	Files      map[string]string
	Duplicates []string
}
