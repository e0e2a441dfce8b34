// Package patterns provides a centralized registry of the curated token lists
// used for phishing detection. All lists are registered once at package init
// and shared across the feature bank and the email analyzer.
//
// Design principles:
// - REGISTER ONCE: Lists are built at init, not per-request
// - DRY: Single source of truth for keywords, TLDs, brands and phrases
// - CATEGORIZED: Tokens organized by category for targeted lookups
// - EXTENSIBLE: Easy to add new tokens without modifying detection code
package patterns

import (
	"strings"
	"sync"
)

// Category represents a token category
type Category string

const (
	// URL-side categories
	CategorySuspiciousKeyword Category = "suspicious_keyword"
	CategorySuspiciousTLD     Category = "suspicious_tld"
	CategoryBrand             Category = "brand"
	CategoryTrustedDomain     Category = "trusted_domain"

	// Email-side categories
	CategoryPhishingPhrase Category = "phishing_phrase"
	CategoryBlacklistedTLD Category = "blacklisted_tld"
)

// MatchMode controls how a token is compared against input
type MatchMode int

const (
	// MatchSubstring matches if the token appears anywhere in the input
	MatchSubstring MatchMode = iota
	// MatchExact matches only if the input equals the token
	MatchExact
)

// Token holds a single curated entry with metadata
type Token struct {
	Value       string    // Lowercase token text
	Category    Category  // Token category
	Mode        MatchMode // How the token is matched
	Severity    int       // Risk score contribution (0-100)
	Description string    // What this token indicates
}

// Registry holds all registered tokens, organized by category
type Registry struct {
	mu         sync.RWMutex
	byCategory map[Category][]*Token
	exact      map[Category]map[string]*Token
	all        []*Token
}

// global singleton - initialized once at package load
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global token registry (singleton)
// Thread-safe and guaranteed to be initialized
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Token),
		exact:      make(map[Category]map[string]*Token),
		all:        make([]*Token, 0, 128),
	}

	r.registerSuspiciousKeywords()
	r.registerSuspiciousTLDs()
	r.registerBrands()
	r.registerTrustedDomains()
	r.registerPhishingPhrases()
	r.registerBlacklistedTLDs()

	return r
}

// register adds a token to the registry (internal use only)
func (r *Registry) register(value string, category Category, mode MatchMode, severity int, description string) {
	t := &Token{
		Value:       strings.ToLower(value),
		Category:    category,
		Mode:        mode,
		Severity:    severity,
		Description: description,
	}

	r.byCategory[category] = append(r.byCategory[category], t)
	if mode == MatchExact {
		if r.exact[category] == nil {
			r.exact[category] = make(map[string]*Token)
		}
		r.exact[category][t.Value] = t
	}
	r.all = append(r.all, t)
}

// GetByCategory returns all tokens for a specific category
// Returns empty slice if category not found (never nil)
func (r *Registry) GetByCategory(cat Category) []*Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if tokens, ok := r.byCategory[cat]; ok {
		return tokens
	}
	return []*Token{}
}

// Values returns the raw token strings for a category, in registration order.
func (r *Registry) Values(cat Category) []string {
	tokens := r.GetByCategory(cat)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}

// ContainsExact reports whether the input is an exact member of the category.
// Input is lowercased before lookup.
func (r *Registry) ContainsExact(cat Category, s string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.exact[cat]
	if !ok {
		return false
	}
	_, hit := set[strings.ToLower(s)]
	return hit
}

// MatchSubstrings returns every substring-mode token of the category that
// appears in the input. Input is lowercased before matching.
func (r *Registry) MatchSubstrings(cat Category, s string) []*Token {
	lower := strings.ToLower(s)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*Token
	for _, t := range r.byCategory[cat] {
		if t.Mode == MatchSubstring && strings.Contains(lower, t.Value) {
			matches = append(matches, t)
		}
	}
	return matches
}

// MatchAny returns the first substring-mode token of the category that
// appears in the input, or nil. Optimized for early exit on first match.
func (r *Registry) MatchAny(cat Category, s string) *Token {
	lower := strings.ToLower(s)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byCategory[cat] {
		if t.Mode == MatchSubstring && strings.Contains(lower, t.Value) {
			return t
		}
	}
	return nil
}

// TotalTokens returns the total count of registered tokens
func (r *Registry) TotalTokens() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// CategoryCount returns the number of tokens in a category
func (r *Registry) CategoryCount(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCategory[cat])
}
