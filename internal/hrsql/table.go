package hrsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/ormcookbook/recipes/port/hr"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/flsql"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/comproto"
)

var classificationColumns = []string{
	"employee_classification_key",
	"employee_classification_name",
	"is_exempt",
	"is_employee",
}

var employeeColumns = []string{
	"employee_key",
	"first_name",
	"middle_name",
	"last_name",
	"title",
	"office_phone",
	"cell_phone",
	"employee_classification_key",
}

// table is the shared query layer of the SQL recipes.
type table struct {
	Connection flsql.Connection
	Dialect    Dialect
}

func (t table) withTx(ctx context.Context, blk func(ctx context.Context) error) (rErr error) {
	ctx, err := t.Connection.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer comproto.FinishOnePhaseCommit(&rErr, t.Connection, ctx)
	return blk(ctx)
}

// insert adds a row and returns its generated key.
// Without RETURNING support, the caller must already be in a transaction,
// so LastInsertID reads the key from the same session.
func (t table) insert(ctx context.Context, tableName, keyColumn string, columns []string, args []any) (int, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), t.Dialect.params(1, len(args)))

	logger.Debug(ctx, "executing create SQL", logging.Field("query", query))

	var key int
	if t.Dialect.Returning {
		err := t.Connection.QueryRowContext(ctx, query+" RETURNING "+keyColumn, args...).Scan(&key)
		return key, err
	}
	if _, err := t.Connection.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	err := t.Connection.QueryRowContext(ctx, t.Dialect.LastInsertID).Scan(&key)
	return key, err
}

func (t table) exec(ctx context.Context, query string, args ...any) (int64, error) {
	logger.Debug(ctx, "executing SQL", logging.Field("query", query))
	res, err := t.Connection.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func queryMany[T any](ctx context.Context, q flsql.Queryable, scan func(flsql.Scanner) (T, error), query string, args ...any) (_ []T, rErr error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer errorkit.Finish(&rErr, rows.Close)
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func queryOne[T any](ctx context.Context, q flsql.Queryable, scan func(flsql.Scanner) (T, error), query string, args ...any) (T, bool, error) {
	vs, err := queryMany(ctx, q, scan, query, args...)
	if err != nil || len(vs) == 0 {
		var zero T
		return zero, false, err
	}
	return vs[0], true, nil
}

func scanClassification(s flsql.Scanner) (hr.EmployeeClassification, error) {
	var ec hr.EmployeeClassification
	err := s.Scan(&ec.Key, &ec.Name, &ec.IsExempt, &ec.IsEmployee)
	return ec, err
}

func scanEmployee(s flsql.Scanner) (*hr.EmployeeSimple, error) {
	var e hr.EmployeeSimple
	err := s.Scan(&e.Key, &e.FirstName, &e.MiddleName, &e.LastName, &e.Title, &e.OfficePhone, &e.CellPhone, &e.ClassificationKey)
	return &e, err
}

func (t table) selectClassifications(where string) string {
	query := fmt.Sprintf("SELECT %s FROM employee_classification", strings.Join(classificationColumns, ", "))
	if where != "" {
		query += " WHERE " + where
	}
	return query
}

func (t table) createClassification(ctx context.Context, ec hr.EmployeeClassification) (key int, err error) {
	args := []any{ec.Name, ec.IsExempt, ec.IsEmployee}
	create := func(ctx context.Context) error {
		key, err = t.insert(ctx, "employee_classification", classificationColumns[0], classificationColumns[1:], args)
		return err
	}
	if t.Dialect.Returning {
		return key, create(ctx)
	}
	return key, t.withTx(ctx, create)
}

func (t table) getClassification(ctx context.Context, key int) (hr.EmployeeClassification, bool, error) {
	query := t.selectClassifications("employee_classification_key = " + t.Dialect.Placeholder(1))
	return queryOne(ctx, t.Connection, scanClassification, query, key)
}

func (t table) findClassification(ctx context.Context, name string) (hr.EmployeeClassification, bool, error) {
	query := t.selectClassifications("employee_classification_name = " + t.Dialect.Placeholder(1))
	return queryOne(ctx, t.Connection, scanClassification, query, name)
}

func (t table) allClassifications(ctx context.Context) ([]hr.EmployeeClassification, error) {
	return queryMany(ctx, t.Connection, scanClassification, t.selectClassifications(""))
}

// updateClassification sets the named columns of a row.
// A key without a row is not an error, the statement affects zero rows.
func (t table) updateClassification(ctx context.Context, key int, columns []string, args ...any) error {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = c + " = " + t.Dialect.Placeholder(i+1)
	}
	query := fmt.Sprintf("UPDATE employee_classification SET %s WHERE employee_classification_key = %s",
		strings.Join(sets, ", "), t.Dialect.Placeholder(len(columns)+1))
	_, err := t.exec(ctx, query, append(args, key)...)
	return err
}

func (t table) deleteClassification(ctx context.Context, key int) (bool, error) {
	query := "DELETE FROM employee_classification WHERE employee_classification_key = " + t.Dialect.Placeholder(1)
	n, err := t.exec(ctx, query, key)
	return 0 < n, err
}
