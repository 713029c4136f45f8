package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Sharma General Store", "sharma-general-store"},
		{"  Gupta & Sons  ", "gupta-sons"},
		{"Café Krishna!!", "caf-krishna"},
		{"A1 Traders", "a1-traders"},
		{"---", "shop"},
		{"", "shop"},
	}

	for _, c := range cases {
		if got := slugify(c.name); got != c.want {
			t.Errorf("slugify(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
