package complete

import "testing"

func TestEscaper(t *testing.T) {
	esc := NewEscaper([]string{"select", "table", "user", "order"})

	testCases := []struct {
		name        string
		expected    string
		description string
	}{
		// plain names pass through
		{"orders", "orders", "Plain lowercase name"},
		{"order_items", "order_items", "Underscore name"},
		{"_hidden", "_hidden", "Leading underscore"},
		{"col$1", "col$1", "Dollar sign allowed after first char"},

		// reserved words get quoted regardless of case
		{"user", `"user"`, "Reserved word"},
		{"ORDER", `"ORDER"`, "Reserved word uppercase"},
		{"Select", `"Select"`, "Reserved word mixed case"},

		// anything outside the identifier pattern gets quoted
		{"Foo", `"Foo"`, "Mixed case name"},
		{"my table", `"my table"`, "Name with space"},
		{"1st", `"1st"`, "Leading digit"},
		{"naïve", `"naïve"`, "Non-ascii char"},

		// empty and the star pseudo-column never need quoting
		{"", "", "Empty name"},
		{"*", "*", "Star pseudo-column"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := esc.Escape(tc.name); got != tc.expected {
				t.Errorf("Escape(%q) = %q, want %q", tc.name, got, tc.expected)
			}
		})
	}
}

// every name must survive an escape/unescape round trip untouched
func TestEscapeRoundTrip(t *testing.T) {
	esc := NewEscaper([]string{"select", "from", "table"})

	names := []string{
		"orders", "user_id", "Foo", "my table", "select", "TABLE",
		"1999_sales", "_x", "a$b", "naïve",
	}
	for _, name := range names {
		if got := Unescape(esc.Escape(name)); got != name {
			t.Errorf("round trip of %q gave %q", name, got)
		}
	}
}

func TestUnescape(t *testing.T) {
	testCases := []struct {
		in          string
		expected    string
		description string
	}{
		{`"Foo"`, "Foo", "Quoted name"},
		{"Foo", "Foo", "Unquoted name"},
		{`"`, `"`, "Lone quote stays put"},
		{`"x`, `"x`, "Unbalanced leading quote"},
		{`x"`, `x"`, "Unbalanced trailing quote"},
		{`""`, "", "Empty quoted name"},
		{"", "", "Empty string"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := Unescape(tc.in); got != tc.expected {
				t.Errorf("Unescape(%q) = %q, want %q", tc.in, got, tc.expected)
			}
		})
	}
}

func TestEscapeAll(t *testing.T) {
	esc := NewEscaper([]string{"order"})

	got := esc.EscapeAll([]string{"orders", "order", "Foo"})
	want := []string{"orders", `"order"`, `"Foo"`}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EscapeAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
