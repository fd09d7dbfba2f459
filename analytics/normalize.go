package analytics

import (
	"net/url"
	"strings"
)

// NormalizePath canonicalizes a visited path or URL so the same page is
// always counted under one key:
// - scheme and host are lowercased
// - the fragment is dropped
// - tracking query parameters (utm_*, fbclid, gclid) are dropped
// - trailing slashes are trimmed, except for the root path
// - bare relative paths gain a leading slash
func NormalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		// unparseable input is kept as is apart from the trailing slash
		if trimmed := strings.TrimRight(raw, "/"); trimmed != "" {
			return trimmed
		}
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	if u.Host == "" && !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
		u.RawPath = ""
	}

	out := u.String()
	if trimmed := strings.TrimRight(out, "/"); trimmed != "" {
		out = trimmed
	}
	return out
}
