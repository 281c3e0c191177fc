package hrsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/pkg/flsql"
)

// EmployeeRepository implements the Sorting recipe.
type EmployeeRepository struct {
	Connection flsql.Connection
	Dialect    Dialect
}

var _ repository.Sorting[*hr.EmployeeSimple] = EmployeeRepository{}

func (r EmployeeRepository) queries() table {
	return table{Connection: r.Connection, Dialect: r.Dialect}
}

// InsertBatch inserts every employee in a single transaction.
func (r EmployeeRepository) InsertBatch(ctx context.Context, es []*hr.EmployeeSimple) error {
	for _, e := range es {
		if e == nil {
			return repository.ErrNilModel("InsertBatch")
		}
	}
	t := r.queries()
	return t.withTx(ctx, func(ctx context.Context) error {
		for _, e := range es {
			key, err := t.insert(ctx, "employee", employeeColumns[0], employeeColumns[1:], []any{
				e.FirstName, e.MiddleName, e.LastName, e.Title, e.OfficePhone, e.CellPhone, e.ClassificationKey,
			})
			if err != nil {
				return err
			}
			e.Key = key
		}
		return nil
	})
}

func (r EmployeeRepository) byLastName(ctx context.Context, lastName string, orderBy ...string) ([]*hr.EmployeeSimple, error) {
	query := fmt.Sprintf("SELECT %s FROM employee WHERE last_name = %s ORDER BY %s, employee_key",
		strings.Join(employeeColumns, ", "), r.Dialect.Placeholder(1), strings.Join(orderBy, ", "))
	return queryMany(ctx, r.Connection, scanEmployee, query, lastName)
}

func (r EmployeeRepository) SortByFirstName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	return r.byLastName(ctx, lastName, "first_name")
}

func (r EmployeeRepository) SortByMiddleNameDescFirstName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	return r.byLastName(ctx, lastName, "(middle_name IS NULL)", "middle_name DESC", "first_name")
}

func (r EmployeeRepository) SortByLastNameFirstNameMiddleName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	return r.byLastName(ctx, lastName, "last_name", "first_name", "(middle_name IS NOT NULL)", "middle_name")
}

func (r EmployeeRepository) DeleteByLastName(ctx context.Context, lastName string) error {
	_, err := r.queries().exec(ctx, "DELETE FROM employee WHERE last_name = "+r.Dialect.Placeholder(1), lastName)
	return err
}

// DivisionRepository implements the ScalarValue recipe.
type DivisionRepository struct {
	Connection flsql.Connection
	Dialect    Dialect
}

var _ repository.ScalarValue = DivisionRepository{}

func scanInt(s flsql.Scanner) (int, error) {
	var v int
	err := s.Scan(&v)
	return v, err
}

func scanString(s flsql.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}

func (r DivisionRepository) GetDivisionKey(ctx context.Context, divisionName string) (int, bool, error) {
	query := "SELECT division_key FROM division WHERE division_name = " + r.Dialect.Placeholder(1)
	return queryOne(ctx, r.Connection, scanInt, query, divisionName)
}

func (r DivisionRepository) GetDivisionName(ctx context.Context, divisionKey int) (string, bool, error) {
	query := "SELECT division_name FROM division WHERE division_key = " + r.Dialect.Placeholder(1)
	return queryOne(ctx, r.Connection, scanString, query, divisionKey)
}

func (r DivisionRepository) GetDivisionNames(ctx context.Context) ([]string, error) {
	return queryMany(ctx, r.Connection, scanString, "SELECT division_name FROM division ORDER BY division_name")
}
