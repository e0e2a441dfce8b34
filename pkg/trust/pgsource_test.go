package trust

import (
	"context"
	"testing"
)

func TestPostgresSourceRejectsBadTableName(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"injection attempt", "trusted_domains; DROP TABLE users"},
		{"quoted segment", `trusted" --`},
		{"embedded space", "trusted domains"},
		{"leading digit", "1domains"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &PostgresSource{Table: tt.table}
			// Validation fires before any query is issued, so no pool is needed.
			if _, err := src.Load(context.Background()); err == nil {
				t.Errorf("Expected table name %q to be rejected", tt.table)
			}
		})
	}
}

func TestSQLIdentifierPattern(t *testing.T) {
	for _, table := range []string{"trusted_domains", "TrustList", "_staging", "t1"} {
		if !reSQLIdentifier.MatchString(table) {
			t.Errorf("Expected %q to be accepted as an identifier", table)
		}
	}
}
