package postgres

import (
	"context"
	_ "embed"
	"fmt"

	postgresPlatform "evalportal/internal/platform/database/postgres"
)

//go:embed schema.sql
var schema string

// Connector hands out the current pool. *database.Lifecycle satisfies it.
type Connector interface {
	Connection() *postgresPlatform.DB
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db Connector) error {
	if _, err := db.Connection().ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
