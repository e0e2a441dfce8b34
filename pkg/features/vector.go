package features

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/darklord8515/PhishBuster/pkg/patterns"
)

// Schema is the fixed, ordered list of feature names a trained classifier
// expects as input. It is persisted alongside the model artifact and
// versioned explicitly so the feature extractor can evolve without silently
// misaligning a previously trained model.
type Schema struct {
	Version  string   `yaml:"version" json:"version"`
	Features []string `yaml:"features" json:"features"`
}

// LoadSchema reads a schema artifact from a YAML file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	if len(s.Features) == 0 {
		return nil, fmt.Errorf("schema %q lists no features", path)
	}
	return &s, nil
}

// DefaultSchema returns the canonical v2 feature set: every lexical and
// derived feature in a stable order. Models trained against older or
// narrower schemas still load correctly because Assemble reindexes against
// whatever schema the model shipped with.
func DefaultSchema() *Schema {
	names := []string{
		"url_length", "hostname_length", "domain_length", "subdomain_length", "path_length",
		"num_dots", "num_hyphens", "num_at", "num_question", "num_equals",
		"num_underscore", "num_and", "num_percent", "num_slash", "num_colon",
		"num_digits", "num_letters",
		"has_https", "has_ip",
		"count_www", "count_com", "count_exe",
		"tld_length", "num_subdomains",
		"starts_with_http", "has_double_slash", "has_https_token",
		"is_long_url", "is_encoded",
		"is_suspicious_tld", "is_whitelisted_domain",
		"hostname_entropy", "has_homoglyph",
		"brand_in_subdomain", "brand_in_subdomain_not_official",
	}
	for _, t := range patterns.Get().GetByCategory(patterns.CategorySuspiciousKeyword) {
		names = append(names, "word_"+t.Value)
	}
	names = append(names,
		"num_suspicious_words", "combo_suspicious_words",
		"has_suspicious_path", "subdomain_support_help",
	)

	return &Schema{Version: "v2", Features: names}
}

// Assemble reindexes a feature map against a schema: for each schema name,
// the computed value if present, else 0, in exactly the schema's order.
// Features the schema does not name are dropped. This reindex-with-default
// contract is what keeps an old model artifact and a newer extractor from
// silently misaligning.
func Assemble(feats map[string]float64, schema []string) []float64 {
	vector := make([]float64, len(schema))
	for i, name := range schema {
		vector[i] = feats[name]
	}
	return vector
}
