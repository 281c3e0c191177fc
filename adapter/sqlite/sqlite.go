// Package sqlite runs the HR recipes on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/ormcookbook/recipes/internal/hrsql"
	"go.llib.dev/frameless/pkg/flsql"
	_ "modernc.org/sqlite"
)

type Connection struct {
	flsql.ConnectionAdapter[sql.DB, sql.Tx]
}

// Connect opens the database file at path.
// The special ":memory:" path is not shared between connections,
// so it is only usable because the pool holds a single connection.
func Connect(path string) (Connection, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return Connection{}, err
	}
	// SQLite allows a single writer, so the pool serialises access instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return Connection{ConnectionAdapter: flsql.SQLConnectionAdapter(db)}, nil
}

// Open connects to the database and migrates the HR schema.
func Open(ctx context.Context, path string) (Connection, hrsql.Recipes, error) {
	conn, err := Connect(path)
	if err != nil {
		return Connection{}, hrsql.Recipes{}, err
	}
	if err := hrsql.Migrate(ctx, conn, hrsql.SQLite); err != nil {
		_ = conn.Close()
		return Connection{}, hrsql.Recipes{}, err
	}
	return conn, hrsql.NewRecipes(conn, hrsql.SQLite), nil
}
