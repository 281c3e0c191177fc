package hrsql

import (
	"context"

	"github.com/ormcookbook/recipes/port/hr"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/flsql"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

const ErrMigration errorkit.Error = "hr schema migration failed"

// Migrate creates the HR tables when they are missing, and inserts the seed rows.
// It is safe to run on an already migrated database.
func Migrate(ctx context.Context, conn flsql.Queryable, d Dialect) error {
	for _, stmt := range d.Schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return ErrMigration.Wrap(err)
		}
	}

	type seed struct {
		table   string
		columns []string
		args    []any
	}
	var seeds []seed
	for _, v := range hr.SeedDivisions {
		seeds = append(seeds, seed{"division", []string{"division_key", "division_name"}, []any{v.Key, v.Name}})
	}
	for _, v := range hr.SeedDepartments {
		seeds = append(seeds, seed{"department", []string{"department_key", "department_name", "division_key"}, []any{v.Key, v.Name, v.DivisionKey}})
	}
	for _, v := range hr.SeedClassifications {
		seeds = append(seeds, seed{"employee_classification", classificationColumns, []any{v.Key, v.Name, v.IsExempt, v.IsEmployee}})
	}
	for _, s := range seeds {
		query := d.InsertIgnore(s.table, s.columns, d.params(1, len(s.args)))
		if _, err := conn.ExecContext(ctx, query, s.args...); err != nil {
			return ErrMigration.Wrap(err)
		}
	}

	for _, stmt := range d.AfterSeed {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return ErrMigration.Wrap(err)
		}
	}
	logger.Info(ctx, "hr schema is ready", logging.Field("dialect", d.Name))
	return nil
}
