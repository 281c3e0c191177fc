package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ormcookbook/recipes/adapter/sqlite"
	"github.com/ormcookbook/recipes/internal/hrsql"
	"github.com/ormcookbook/recipes/internal/hrsql/hrsqltest"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/repositorycontract"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func Open(tb testing.TB) hrsql.Recipes {
	conn, recipes, err := sqlite.Open(context.Background(), filepath.Join(tb.TempDir(), "hr.db"))
	assert.NoError(tb, err)
	tb.Cleanup(func() { _ = conn.Close() })
	return recipes
}

func TestRecipes(t *testing.T) {
	logger.Testing(t)
	testcase.RunSuite(t, hrsqltest.Contracts(Open(t))...)
}

func TestRecipes_strictDelete(t *testing.T) {
	recipes := Open(t)
	recipes.Classifications.StrictDelete = true

	testcase.RunSuite(t, repositorycontract.SingleModelCrud[*hr.EmployeeClassification](recipes.Classifications,
		repositorycontract.Config[*hr.EmployeeClassification]{Scenario: repositorycontract.MutableScenario{}},
		repositorycontract.MissingKey[*hr.EmployeeClassification](repository.MissingKeyNotFound),
	))
}

func TestOpen_isIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hr.db")

	conn, recipes, err := sqlite.Open(ctx, path)
	assert.NoError(t, err)
	key, err := recipes.Classifications.Create(ctx, &hr.EmployeeClassification{Name: "Reopened"})
	assert.NoError(t, err)
	assert.NoError(t, conn.Close())

	conn, recipes, err = sqlite.Open(ctx, path)
	assert.NoError(t, err)
	defer conn.Close()

	all, err := recipes.Classifications.GetAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, len(hr.SeedClassifications)+1, len(all))

	next, err := recipes.Classifications.Create(ctx, &hr.EmployeeClassification{Name: "After reopen"})
	assert.NoError(t, err)
	assert.True(t, key < next)
}

func TestRecipes_uniqueName(t *testing.T) {
	ctx := context.Background()
	recipes := Open(t)

	_, err := recipes.Classifications.Create(ctx, &hr.EmployeeClassification{Name: hr.SeedClassifications[0].Name})
	assert.Error(t, err)
}
