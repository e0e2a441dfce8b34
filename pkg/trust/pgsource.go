package trust

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Table names cannot be bound as query parameters, so the configured name is
// restricted to a plain SQL identifier before it is interpolated.
var reSQLIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresSource loads the trust list from a Postgres table. The table needs
// a single text column of registered domains:
//
//	CREATE TABLE trusted_domains (domain TEXT PRIMARY KEY);
//
// The list is still read once at startup; the gate itself never touches the
// database per request.
type PostgresSource struct {
	Pool  *pgxpool.Pool
	Table string // defaults to "trusted_domains"
}

// NewPostgresSource connects a pool to the given DSN.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to trust list database: %w", err)
	}
	return &PostgresSource{Pool: pool}, nil
}

func (s *PostgresSource) Load(ctx context.Context) ([]string, error) {
	table := s.Table
	if table == "" {
		table = "trusted_domains"
	}
	if !reSQLIdentifier.MatchString(table) {
		return nil, fmt.Errorf("invalid trust list table name %q", table)
	}

	rows, err := s.Pool.Query(ctx, fmt.Sprintf("SELECT domain FROM %q", table))
	if err != nil {
		return nil, fmt.Errorf("failed to query trust list: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan trust list row: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trust list query failed: %w", err)
	}
	return domains, nil
}

// Close releases the underlying pool.
func (s *PostgresSource) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
