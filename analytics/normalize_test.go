package analytics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"root", "/", "/"},
		{"simple", "/blog/shipping-go", "/blog/shipping-go"},
		{"trailing slash", "/blog/shipping-go/", "/blog/shipping-go"},
		{"relative", "about", "/about"},
		{"utm and fragment", "/blog/post?utm_source=feed#comments", "/blog/post"},
		{"tracking params", "/?fbclid=XYZ&gclid=ABC&utm_medium=1", "/"},
		{"keeps real query", "/search?q=go&utm_campaign=x", "/search?q=go"},
		{"uppercase host", "HTTPS://Example.DEV/About/", "https://example.dev/About"},
		{"blank", "   ", ""},
		{"bad escape keeps case", "/Blog/%zz/", "/Blog/%zz"},
		{"good escape keeps case", "/Blog/ok/", "/Blog/ok"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizePath(c.in); got != c.want {
				t.Fatalf("NormalizePath(%q) = %q; want %q", c.in, got, c.want)
			}
			if again := NormalizePath(c.want); again != c.want {
				t.Fatalf("NormalizePath is not stable: %q -> %q", c.want, again)
			}
		})
	}
}
