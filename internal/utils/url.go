package utils

import (
	"net/url"
	"strings"
)

// IsSafeRedirect reports whether target may be used as a post-login
// redirect for a request served from hostURL. The target must resolve to
// an http(s) URL on the same host; relative paths always do.
//
// Example usage:
//
//	utils.IsSafeRedirect("http://localhost:5000/", "/account")              // true
//	utils.IsSafeRedirect("http://localhost:5000/", "https://evil.example/x") // false
func IsSafeRedirect(hostURL, target string) bool {
	if target == "" {
		return true
	}
	// browsers treat backslashes like slashes, "/\evil.example" is protocol-relative
	if strings.Contains(target, `\`) {
		return false
	}

	base, err := url.Parse(hostURL)
	if err != nil {
		return false
	}

	ref, err := url.Parse(target)
	if err != nil {
		return false
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return false
	}

	return strings.EqualFold(resolved.Host, base.Host)
}
