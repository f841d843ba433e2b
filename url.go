package docnav

import (
	"net/url"
	"strings"
)

// Slashify returns u with a trailing slash, adding one only if missing.
func Slashify(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

// Resolve resolves ref against base using RFC 3986 reference resolution.
// Relative paths (including "..") are resolved against base, absolute refs
// are returned as-is. Only http and https results are accepted.
func Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL %q: %v", base, err)
	}
	if !b.IsAbs() {
		return "", Errorf(EINVALID, "base URL %q is not absolute", base)
	}

	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", Errorf(EINVALID, "invalid reference %q: %v", ref, err)
	}

	resolved := b.ResolveReference(r)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q in %q", resolved.Scheme, ref)
	}
	return resolved.String(), nil
}
