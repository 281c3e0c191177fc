// Package mysql runs the HR recipes on MySQL and MariaDB through go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ormcookbook/recipes/internal/hrsql"
	"go.llib.dev/frameless/pkg/flsql"
)

type Connection struct {
	flsql.ConnectionAdapter[sql.DB, sql.Tx]
}

func Connect(dsn string) (Connection, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return Connection{}, err
	}
	// connections must be closed by the driver before the server or a middleware drops them,
	// and some middlewares close idle connections after 5 minutes.
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	// equal to MaxOpenConns, otherwise connections are opened and closed more often than expected.
	db.SetMaxIdleConns(10)
	return Connection{ConnectionAdapter: flsql.SQLConnectionAdapter(db)}, nil
}

// Open connects to the database and migrates the HR schema.
func Open(ctx context.Context, dsn string) (Connection, hrsql.Recipes, error) {
	conn, err := Connect(dsn)
	if err != nil {
		return Connection{}, hrsql.Recipes{}, err
	}
	if err := hrsql.Migrate(ctx, conn, hrsql.MySQL); err != nil {
		_ = conn.Close()
		return Connection{}, hrsql.Recipes{}, err
	}
	return conn, hrsql.NewRecipes(conn, hrsql.MySQL), nil
}
