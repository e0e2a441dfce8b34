// Package features turns a parsed URL into the numeric feature map the
// classifier consumes. All features are pure functions of the input string:
// identical URL in, identical feature map out, always.
package features

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/darklord8515/PhishBuster/pkg/urlparse"
)

// Dotted-quad host directly after the scheme, e.g. http://192.168.0.1/...
var reIPHost = regexp.MustCompile(`^http[s]?://(\d{1,3}\.){3}\d{1,3}`)

// Lexical computes the scalar features derived directly from the raw string
// and its structural parts: lengths, character counts and token flags.
func Lexical(p urlparse.Parts) map[string]float64 {
	raw := p.Raw
	lower := strings.ToLower(raw)

	feats := map[string]float64{
		"url_length":       float64(len(raw)),
		"hostname_length":  float64(len(p.Host)),
		"domain_length":    float64(len(p.RegisteredDomain)),
		"subdomain_length": float64(len(p.Subdomain)),
		"path_length":      float64(len(p.Path)),
		"num_dots":         float64(strings.Count(raw, ".")),
		"num_hyphens":      float64(strings.Count(raw, "-")),
		"num_at":           float64(strings.Count(raw, "@")),
		"num_question":     float64(strings.Count(raw, "?")),
		"num_equals":       float64(strings.Count(raw, "=")),
		"num_underscore":   float64(strings.Count(raw, "_")),
		"num_and":          float64(strings.Count(raw, "&")),
		"num_percent":      float64(strings.Count(raw, "%")),
		"num_slash":        float64(strings.Count(raw, "/")),
		"num_colon":        float64(strings.Count(raw, ":")),
		"count_www":        float64(strings.Count(lower, "www")),
		"count_com":        float64(strings.Count(lower, ".com")),
		"count_exe":        float64(strings.Count(lower, ".exe")),
		"tld_length":       float64(len(p.TLD)),
	}

	digits, letters := 0, 0
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	feats["num_digits"] = float64(digits)
	feats["num_letters"] = float64(letters)

	feats["has_https"] = boolFeat(strings.HasPrefix(lower, "https"))
	feats["starts_with_http"] = boolFeat(strings.HasPrefix(lower, "http"))
	feats["has_ip"] = boolFeat(reIPHost.MatchString(lower))
	feats["num_subdomains"] = float64(subdomainCount(p.Host))

	// "//" after the leading slash of the path is a redirect trick
	hasDoubleSlash := false
	if len(p.Path) > 1 {
		hasDoubleSlash = strings.Contains(p.Path[1:], "//")
	}
	feats["has_double_slash"] = boolFeat(hasDoubleSlash)

	// The https token embedded in path or query mimics a secure URL
	feats["has_https_token"] = boolFeat(
		strings.Contains(strings.ToLower(p.Path), "https") ||
			strings.Contains(strings.ToLower(p.Query), "https"))

	feats["is_long_url"] = boolFeat(len(raw) > 75)
	feats["is_encoded"] = boolFeat(strings.Contains(raw, "%"))

	return feats
}

// subdomainCount returns the number of host labels beyond domain + suffix,
// floored at zero.
func subdomainCount(host string) int {
	if host == "" {
		return 0
	}
	n := len(strings.Split(host, ".")) - 2
	if n < 0 {
		return 0
	}
	return n
}

func boolFeat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
