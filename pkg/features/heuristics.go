package features

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/darklord8515/PhishBuster/pkg/patterns"
	"github.com/darklord8515/PhishBuster/pkg/urlparse"
)

// Derive computes the higher-level signals on top of the lexical features:
// curated-list membership, entropy, confusable characters and brand
// impersonation. Everything here is deterministic and touches no external
// state beyond the static token registry.
func Derive(p urlparse.Parts) map[string]float64 {
	reg := patterns.Get()
	lower := strings.ToLower(p.Raw)
	feats := make(map[string]float64)

	feats["is_suspicious_tld"] = boolFeat(reg.ContainsExact(patterns.CategorySuspiciousTLD, p.TLD))

	// Informational only: the trust gate makes its own exact-match decision
	// and short-circuits before the classifier ever sees this feature.
	feats["is_whitelisted_domain"] = boolFeat(reg.ContainsExact(patterns.CategoryTrustedDomain, p.RegisteredDomain))

	feats["hostname_entropy"] = ShannonEntropy(p.Host)
	feats["has_homoglyph"] = boolFeat(hasConfusable(p.Host))

	feats["brand_in_subdomain"] = boolFeat(reg.MatchAny(patterns.CategoryBrand, p.Subdomain) != nil)
	feats["brand_in_subdomain_not_official"] = boolFeat(brandImpersonation(reg, p))

	hits := reg.MatchSubstrings(patterns.CategorySuspiciousKeyword, lower)
	for _, t := range reg.GetByCategory(patterns.CategorySuspiciousKeyword) {
		feats["word_"+t.Value] = 0
	}
	for _, t := range hits {
		feats["word_"+t.Value] = 1
	}
	feats["num_suspicious_words"] = float64(len(hits))
	feats["combo_suspicious_words"] = boolFeat(len(hits) >= 2)

	feats["has_suspicious_path"] = boolFeat(reg.MatchAny(patterns.CategorySuspiciousKeyword, p.Path) != nil)

	sub := strings.ToLower(p.Subdomain)
	feats["subdomain_support_help"] = boolFeat(
		strings.Contains(sub, "support") ||
			strings.Contains(sub, "help") ||
			strings.Contains(sub, "secure"))

	return feats
}

// Extract runs the full pipeline on a raw URL: parse, lexical features, then
// derived features, merged into one map. This is the single entry point the
// verdict composer uses.
func Extract(raw string) map[string]float64 {
	p := urlparse.Parse(raw)
	feats := Lexical(p)
	for k, v := range Derive(p) {
		feats[k] = v
	}
	return feats
}

// brandImpersonation reports whether a brand name appears anywhere in the
// hostname while the registered domain is not the brand's own .com or .org.
// First match wins; this is a boolean OR across brands, not a count.
func brandImpersonation(reg *patterns.Registry, p urlparse.Parts) bool {
	if p.Host == "" {
		return false
	}
	host := strings.ToLower(p.Host)
	domain := strings.ToLower(p.RegisteredDomain)

	for _, t := range reg.GetByCategory(patterns.CategoryBrand) {
		if !strings.Contains(host, t.Value) {
			continue
		}
		if strings.HasSuffix(domain, t.Value+".com") || strings.HasSuffix(domain, t.Value+".org") {
			continue
		}
		return true
	}
	return false
}

// ShannonEntropy returns the entropy of the character distribution in bits
// per character. Randomly generated subdomains score high; the empty string
// is defined as 0.
func ShannonEntropy(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	counts := make(map[rune]float64)
	total := 0.0
	for _, r := range s {
		counts[r]++
		total++
	}

	entropy := 0.0
	for _, count := range counts {
		p := count / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// hasConfusable reports whether the hostname contains any character from the
// confusable set, a coarse proxy for character-substitution spoofing. The
// host is NFKC-folded first so fullwidth and mathematical lookalikes collapse
// to their ASCII forms before the check.
func hasConfusable(host string) bool {
	for _, r := range norm.NFKC.String(host) {
		if patterns.ConfusableRunes[r] {
			return true
		}
	}
	return false
}
