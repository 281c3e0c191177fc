// Package postgresql runs the HR recipes on PostgreSQL.
//
// Connect uses a pgx connection pool, while ConnectSQL goes through database/sql with the lib/pq driver.
// Both yield a flsql.Connection, so the recipes behave the same on either driver.
package postgresql

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ormcookbook/recipes/internal/hrsql"
	"go.llib.dev/frameless/pkg/contextkit"
	"go.llib.dev/frameless/pkg/flsql"
)

type Connection struct {
	flsql.ConnectionAdapter[pgxpool.Pool, pgx.Tx]
}

func Connect(dsn string) (Connection, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return Connection{}, err
	}
	return Connection{
		ConnectionAdapter: flsql.ConnectionAdapter[pgxpool.Pool, pgx.Tx]{
			DB: pool,

			DBAdapter: func(db *pgxpool.Pool) flsql.Queryable {
				return pgxQueryableAdapter[*pgxpool.Pool]{Q: db}
			},
			TxAdapter: func(tx *pgx.Tx) flsql.Queryable {
				return pgxQueryableAdapter[pgx.Tx]{Q: *tx}
			},

			Begin: func(ctx context.Context, db *pgxpool.Pool) (*pgx.Tx, error) {
				opts, _ := ContextTxOptions.Lookup(ctx)
				tx, err := db.BeginTx(ctx, opts)
				if err != nil {
					return nil, err
				}
				return &tx, nil
			},

			Commit: func(ctx context.Context, tx *pgx.Tx) error {
				return (*tx).Commit(ctx)
			},

			Rollback: func(ctx context.Context, tx *pgx.Tx) error {
				return (*tx).Rollback(ctx)
			},

			OnClose: func() error {
				pool.Close()
				return nil
			},
		},
	}, nil
}

// ContextTxOptions sets the pgx.TxOptions of the transactions that begin with the context.
var ContextTxOptions contextkit.ValueHandler[ctxKeyTxOptions, pgx.TxOptions]

type ctxKeyTxOptions struct{}

type pgxQueryableAdapter[Q pgxQueryable] struct{ Q Q }

type pgxQueryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (ca pgxQueryableAdapter[Q]) ExecContext(ctx context.Context, query string, args ...any) (flsql.Result, error) {
	r, err := ca.Q.Exec(ctx, query, args...)
	return commandTagResult{CommandTag: r}, err
}

type commandTagResult struct{ pgconn.CommandTag }

func (a commandTagResult) RowsAffected() (int64, error) {
	return a.CommandTag.RowsAffected(), nil
}

func (ca pgxQueryableAdapter[Q]) QueryContext(ctx context.Context, query string, args ...any) (flsql.Rows, error) {
	rows, err := ca.Q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgxRowsAdapter{Rows: rows}, nil
}

func (ca pgxQueryableAdapter[Q]) QueryRowContext(ctx context.Context, query string, args ...any) flsql.Row {
	return ca.Q.QueryRow(ctx, query, args...)
}

type pgxRowsAdapter struct{ pgx.Rows }

func (a pgxRowsAdapter) Close() error {
	a.Rows.Close()
	return a.Rows.Err()
}

// SQLConnection is the database/sql flavour of Connection, backed by lib/pq.
type SQLConnection struct {
	flsql.ConnectionAdapter[sql.DB, sql.Tx]
}

func ConnectSQL(dsn string) (SQLConnection, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return SQLConnection{}, err
	}
	return SQLConnection{ConnectionAdapter: flsql.SQLConnectionAdapter(db)}, nil
}

// Open migrates the HR schema through conn, and returns the recipes bound to it.
func Open(ctx context.Context, conn flsql.Connection) (hrsql.Recipes, error) {
	if err := hrsql.Migrate(ctx, conn, hrsql.Postgres); err != nil {
		return hrsql.Recipes{}, err
	}
	return hrsql.NewRecipes(conn, hrsql.Postgres), nil
}
