package patterns

import "testing"

func TestSingletonReturnsSameInstance(t *testing.T) {
	r1 := Get()
	r2 := Get()
	if r1 != r2 {
		t.Error("Expected Get() to return the same registry instance")
	}
}

func TestCategoryCounts(t *testing.T) {
	r := Get()

	tests := []struct {
		name string
		cat  Category
		min  int
	}{
		{"suspicious keywords", CategorySuspiciousKeyword, 15},
		{"suspicious TLDs", CategorySuspiciousTLD, 12},
		{"brands", CategoryBrand, 10},
		{"trusted domains", CategoryTrustedDomain, 50},
		{"phishing phrases", CategoryPhishingPhrase, 7},
		{"blacklisted TLDs", CategoryBlacklistedTLD, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.CategoryCount(tt.cat); got < tt.min {
				t.Errorf("Expected at least %d tokens, got %d", tt.min, got)
			}
		})
	}
}

func TestContainsExact(t *testing.T) {
	r := Get()

	if !r.ContainsExact(CategoryTrustedDomain, "google.com") {
		t.Error("Expected google.com in trusted domains")
	}
	if !r.ContainsExact(CategorySuspiciousTLD, "xyz") {
		t.Error("Expected xyz in suspicious TLDs")
	}
	if r.ContainsExact(CategoryTrustedDomain, "evil-google.com") {
		t.Error("Expected evil-google.com to not match exactly")
	}
	// Exact match must not behave like substring match
	if r.ContainsExact(CategorySuspiciousTLD, "xy") {
		t.Error("Expected partial TLD to not match")
	}
}

func TestMatchSubstrings(t *testing.T) {
	r := Get()

	hits := r.MatchSubstrings(CategorySuspiciousKeyword, "http://secure-login-update.example.com")
	if len(hits) < 3 {
		t.Errorf("Expected at least 3 keyword hits, got %d", len(hits))
	}

	seen := make(map[string]bool)
	for _, h := range hits {
		seen[h.Value] = true
	}
	for _, want := range []string{"secure", "login", "update"} {
		if !seen[want] {
			t.Errorf("Expected keyword %q among hits", want)
		}
	}

	if hits := r.MatchSubstrings(CategorySuspiciousKeyword, "example.org"); len(hits) != 0 {
		t.Errorf("Expected no hits for clean host, got %d", len(hits))
	}
}

func TestMatchAny(t *testing.T) {
	r := Get()

	if tok := r.MatchAny(CategoryPhishingPhrase, "please verify your account today"); tok == nil {
		t.Error("Expected a phishing phrase match")
	}
	if tok := r.MatchAny(CategoryPhishingPhrase, "lunch at noon?"); tok != nil {
		t.Errorf("Expected no match, got %q", tok.Value)
	}
}

func TestTokenMetadata(t *testing.T) {
	r := Get()
	for _, tok := range r.GetByCategory(CategorySuspiciousKeyword) {
		if tok.Severity <= 0 {
			t.Errorf("Token %q has no severity", tok.Value)
		}
		if tok.Description == "" {
			t.Errorf("Token %q has no description", tok.Value)
		}
	}
}
