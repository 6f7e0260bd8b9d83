package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ResponseCacheSchema = `
	CREATE TABLE IF NOT EXISTS response_cache (
		url VARCHAR NOT NULL PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	ResponseCacheSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (and if necessary bootstraps) the durable cache database at
// settings.DbPath. The file is safe to delete between runs; a cold start is
// merely slower, never incorrect.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(settings.DbPath, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("open cache database %q: %w", settings.DbPath, err)
	}

	return sql.OpenDB(c), nil
}
