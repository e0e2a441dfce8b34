// Package urlparse splits raw URL strings into the structural parts the
// feature bank consumes. Parsing never fails: malformed input degrades to
// zero-valued parts so every downstream feature defaults to 0.
package urlparse

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Parts holds the structural decomposition of a URL.
// The registered domain is computed at the public-suffix boundary, not by
// taking the last two dot-separated labels (suffixes like co.uk exist).
type Parts struct {
	Raw              string // Original input, untouched
	Scheme           string // "http", "https", ...
	Host             string // Full hostname, lowercased
	Subdomain        string // Everything left of the registered domain
	RegisteredDomain string // e.g. "example.co.uk"
	TLD              string // Public suffix, e.g. "com", "co.uk"
	Path             string
	Query            string
}

// Parse decomposes a raw URL string. It never returns an error; input that
// cannot be parsed yields a Parts with only Raw set.
func Parse(raw string) Parts {
	parts := Parts{Raw: raw}

	u, err := url.Parse(raw)
	if err != nil {
		return parts
	}

	parts.Scheme = strings.ToLower(u.Scheme)
	parts.Host = strings.ToLower(u.Hostname())
	parts.Path = u.Path
	parts.Query = u.RawQuery

	parts.TLD, parts.RegisteredDomain, parts.Subdomain = splitHost(parts.Host)
	return parts
}

// splitHost separates a hostname into public suffix, registered domain and
// subdomain. Hosts that are themselves a public suffix, IP literals, or
// single labels produce an empty registered domain.
func splitHost(host string) (tld, registered, subdomain string) {
	if host == "" {
		return "", "", ""
	}
	host = strings.Trim(host, ".")

	// IP literals have no public-suffix split
	if net.ParseIP(host) != nil {
		return "", "", ""
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" || suffix == host {
		return suffix, "", ""
	}

	rest := strings.TrimSuffix(host, "."+suffix)
	if rest == host {
		// Host does not actually end with the suffix boundary
		return suffix, "", ""
	}

	labels := strings.Split(rest, ".")
	domainLabel := labels[len(labels)-1]
	if domainLabel == "" {
		return suffix, "", ""
	}

	registered = domainLabel + "." + suffix
	if len(labels) > 1 {
		subdomain = strings.Join(labels[:len(labels)-1], ".")
	}
	return suffix, registered, subdomain
}

// RegisteredDomain is a convenience wrapper used by the trust gate: it
// parses the URL and returns only the lowercased registered domain.
func RegisteredDomain(raw string) string {
	return Parse(raw).RegisteredDomain
}
