package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrNotAbsolute is returned when an absolute http(s) URL was required.
var ErrNotAbsolute = errors.New("url must be an absolute http or https url")

var schemePrefix = regexp.MustCompile(`^https?://`)

// Origin returns the scheme://host form of u used for same-origin comparisons.
// The rules are:
// 1. Scheme and host are lowercased.
// 2. Default ports (80 for http, 443 for https) are stripped.
func Origin(u *url.URL) string {
	if u == nil {
		return ""
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	if (scheme == "http" && strings.HasSuffix(host, ":80")) ||
		(scheme == "https" && strings.HasSuffix(host, ":443")) {
		host = host[:strings.LastIndex(host, ":")]
	}
	if host == "" {
		// mailto:, data: and friends have an opaque origin.
		return "null"
	}
	return scheme + "://" + host
}

// Resolve parses href relative to base, the way a browser resolves a link.
func Resolve(href string, base *url.URL) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	if base == nil {
		if !ref.IsAbs() {
			return nil, ErrNotAbsolute
		}
		return ref, nil
	}
	return base.ResolveReference(ref), nil
}

// IsExternal reports whether href, resolved against the page origin, points
// at a different origin. Unparseable hrefs return an error.
func IsExternal(href string, origin *url.URL) (bool, error) {
	u, err := Resolve(href, origin)
	if err != nil {
		return false, err
	}
	return Origin(u) != Origin(origin), nil
}

// ParseAbsolute parses rawURL and requires an absolute http or https URL with a host.
func ParseAbsolute(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if !u.IsAbs() || (scheme != "http" && scheme != "https") || u.Host == "" {
		return nil, ErrNotAbsolute
	}
	return u, nil
}

// TrimScheme drops a leading http:// or https:// from rawURL.
func TrimScheme(rawURL string) string {
	return schemePrefix.ReplaceAllString(rawURL, "")
}

// WithQuery returns rawURL with key set to value in its query string.
func WithQuery(rawURL, key, value string) (string, error) {
	u, err := ParseAbsolute(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// HostParts splits an absolute URL into its first host label, the remaining
// host labels, and the path with query and fragment.
// "https://labs.buk1t.com/x?y" yields "labs", "buk1t.com", "/x?y".
func HostParts(rawURL string) (first, rest, path string, err error) {
	u, err := ParseAbsolute(rawURL)
	if err != nil {
		return "", "", "", err
	}
	host := u.Host
	first, rest, _ = strings.Cut(host, ".")
	if first == "" {
		first = host
	}

	path = u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		path += "#" + u.EscapedFragment()
	}
	return first, rest, path, nil
}
