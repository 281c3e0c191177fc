// Package hrsqltest assembles the recipe contracts for a SQL backed adapter.
package hrsqltest

import (
	"context"
	"testing"

	"github.com/ormcookbook/recipes/internal/hrsql"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository/async"
	"github.com/ormcookbook/recipes/port/repository/repositorycontract"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase/assert"
)

type (
	classification         = *hr.EmployeeClassification
	readOnlyClassification = *hr.ReadOnlyEmployeeClassification
)

// Contracts returns every recipe contract of the SQL recipes.
func Contracts(r hrsql.Recipes) []contract.Contract {
	mutable := repositorycontract.Config[classification]{
		Scenario:         repositorycontract.MutableScenario{},
		MissingKeyPolicy: r.Classifications.MissingKeyPolicy(),
	}
	return []contract.Contract{
		repositorycontract.SingleModelCrud[classification](r.Classifications, mutable),
		repositorycontract.SingleModelCrudAsync[classification](async.Wrap[classification](r.Classifications), mutable),
		repositorycontract.PartialUpdate[classification](r.Classifications, mutable),
		repositorycontract.Immutable[readOnlyClassification](r.ReadOnly,
			repositorycontract.Config[readOnlyClassification]{Scenario: repositorycontract.ImmutableScenario{}}),
		repositorycontract.Sorting[*hr.EmployeeSimple](r.Employees,
			repositorycontract.Config[*hr.EmployeeSimple]{People: repositorycontract.EmployeeSimpleScenario{}}),
		repositorycontract.ScalarValue(r.Divisions),
	}
}

// Migrate runs the HR migration and fails the test on error.
func Migrate(tb testing.TB, r hrsql.Recipes) {
	tb.Helper()
	assert.NoError(tb, hrsql.Migrate(context.Background(), r.Classifications.Connection, r.Classifications.Dialect))
}
