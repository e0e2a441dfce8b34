// Package trust implements the safe-list short circuit: URLs whose
// registered domain is on the trust list bypass classification entirely.
// The list is loaded once at startup from a swappable source and is
// immutable afterwards, so concurrent lookups need no locking.
package trust

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/darklord8515/PhishBuster/pkg/patterns"
	"github.com/darklord8515/PhishBuster/pkg/urlparse"
)

// Source supplies root domains for the trust list. Implementations exist for
// the built-in static list, YAML files, and Postgres. A refresh protocol can
// be added behind this interface without changing the gate's contract.
type Source interface {
	// Load returns the trusted root domains. Called once at startup.
	Load(ctx context.Context) ([]string, error)
}

// List is an immutable set of trusted registered domains.
type List struct {
	domains map[string]bool
}

// NewList builds a List from a slice of domains. Entries are lowercased and
// trimmed; empty entries are dropped.
func NewList(domains []string) *List {
	set := make(map[string]bool, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			set[d] = true
		}
	}
	return &List{domains: set}
}

// Load builds a List from a source.
func Load(ctx context.Context, src Source) (*List, error) {
	domains, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trust list: %w", err)
	}
	return NewList(domains), nil
}

// Contains reports whether the exact registered domain is trusted.
// Substring containment is deliberately NOT trusted: a lookalike host that
// merely contains a trusted name is the brand-impersonation case, not a
// trusted domain.
func (l *List) Contains(registeredDomain string) bool {
	if l == nil {
		return false
	}
	return l.domains[strings.ToLower(registeredDomain)]
}

// IsTrusted parses the URL and checks its registered domain against the
// list. Returns the matched domain so callers can build the explanation.
func (l *List) IsTrusted(rawURL string) (string, bool) {
	domain := urlparse.RegisteredDomain(rawURL)
	if domain == "" {
		return "", false
	}
	return domain, l.Contains(domain)
}

// Len returns the number of trusted domains.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.domains)
}

// StaticSource serves the built-in known-safe domain list from the token
// registry. Used when no external source is configured.
type StaticSource struct{}

func (StaticSource) Load(ctx context.Context) ([]string, error) {
	return patterns.Get().Values(patterns.CategoryTrustedDomain), nil
}

// FileSource loads domains from a YAML file of the form:
//
//	domains:
//	  - google.com
//	  - github.com
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trust list %q: %w", s.Path, err)
	}

	var doc struct {
		Domains []string `yaml:"domains"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse trust list %q: %w", s.Path, err)
	}
	return doc.Domains, nil
}
