package utils

import "testing"

func TestSortedUnique(t *testing.T) {
	testCases := []struct {
		in          []string
		expected    []string
		description string
	}{
		{[]string{"b", "a", "b", "c", "a"}, []string{"a", "b", "c"}, "Dupes removed and sorted"},
		{[]string{"x"}, []string{"x"}, "Single element"},
		{nil, nil, "Nil input"},
		{[]string{}, []string{}, "Empty input"},
		{[]string{"Z", "a"}, []string{"Z", "a"}, "Uppercase sorts first"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			in := append([]string(nil), tc.in...)
			got := SortedUnique(tc.in)
			if len(got) != len(tc.expected) {
				t.Fatalf("got %v, want %v", got, tc.expected)
			}
			for i := range tc.expected {
				if got[i] != tc.expected[i] {
					t.Errorf("element %d = %q, want %q", i, got[i], tc.expected[i])
				}
			}
			// input must stay untouched
			for i := range in {
				if tc.in[i] != in[i] {
					t.Fatalf("input was mutated: %v", tc.in)
				}
			}
		})
	}
}
