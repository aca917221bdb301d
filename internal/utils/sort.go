package utils

import "sort"

// SortedUnique returns names sorted ascending with duplicates removed.
// A deterministic pool order keeps ranking output stable across runs.
func SortedUnique(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
