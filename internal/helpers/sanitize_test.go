package helpers

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"strips tags", "<p>hello <b>world</b></p>", "hello world"},
		{"drops scripts", `<script>alert("x")</script>safe`, "safe"},
		{"escapes entities", `Tom & Jerry`, "Tom &amp; Jerry"},
		{"empty", "   ", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SanitizeText(c.in); got != c.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
