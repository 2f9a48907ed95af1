package matcher

import "sort"

// CommonKeys returns the keys present in both maps, sorted so the report
// order does not depend on directory enumeration order
func CommonKeys(reference, target map[string]string) []string {
	keys := make([]string, 0, len(reference))
	for key := range reference {
		if _, ok := target[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
