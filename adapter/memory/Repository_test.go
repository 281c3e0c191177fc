package memory_test

import (
	"context"
	"testing"

	"github.com/ormcookbook/recipes/adapter/memory"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/async"
	"github.com/ormcookbook/recipes/port/repository/repositorycontract"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

type (
	Classification         = *hr.EmployeeClassification
	ReadOnlyClassification = *hr.ReadOnlyEmployeeClassification
)

func TestClassificationRepository(t *testing.T) {
	logger.Testing(t)
	subject := memory.NewClassificationRepository(memory.NewMemory())
	config := repositorycontract.Config[Classification]{Scenario: repositorycontract.MutableScenario{}}

	testcase.RunSuite(t,
		repositorycontract.SingleModelCrud[Classification](subject, config),
		repositorycontract.SingleModelCrudAsync[Classification](async.Wrap[Classification](subject), config),
		repositorycontract.PartialUpdate[Classification](subject, config),
	)
}

func TestClassificationRepository_strictDelete(t *testing.T) {
	subject := memory.NewClassificationRepository(memory.NewMemory())
	subject.StrictDelete = true

	testcase.RunSuite(t, repositorycontract.SingleModelCrud[Classification](subject,
		repositorycontract.Config[Classification]{Scenario: repositorycontract.MutableScenario{}},
		repositorycontract.MissingKey[Classification](subject.MissingKeyPolicy()),
	))
}

func TestReadOnlyClassificationRepository(t *testing.T) {
	logger.Testing(t)
	subject := memory.NewReadOnlyClassificationRepository(memory.NewMemory())

	testcase.RunSuite(t, repositorycontract.Immutable[ReadOnlyClassification](subject,
		repositorycontract.Config[ReadOnlyClassification]{Scenario: repositorycontract.ImmutableScenario{}}))
}

func TestEmployeeRepository(t *testing.T) {
	subject := memory.EmployeeRepository{Memory: memory.NewMemory()}

	testcase.RunSuite(t, repositorycontract.Sorting[*hr.EmployeeSimple](subject,
		repositorycontract.Config[*hr.EmployeeSimple]{People: repositorycontract.EmployeeSimpleScenario{}}))
}

func TestDivisionRepository(t *testing.T) {
	testcase.RunSuite(t, repositorycontract.ScalarValue(memory.DivisionRepository{Memory: memory.NewMemory()}))
}

func TestClassificationRepository_uniqueName(t *testing.T) {
	ctx := context.Background()
	subject := memory.NewClassificationRepository(memory.NewMemory())

	_, err := subject.Create(ctx, &hr.EmployeeClassification{Name: "Unique"})
	assert.NoError(t, err)
	_, err = subject.Create(ctx, &hr.EmployeeClassification{Name: "Unique"})
	assert.ErrorIs(t, err, memory.ErrUniqueName)
}

func TestClassificationRepository_sharedMemory(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()
	mutable := memory.NewClassificationRepository(m)
	immutable := memory.NewReadOnlyClassificationRepository(m)

	ec := &hr.EmployeeClassification{Name: "Shared", IsExempt: true}
	key, err := mutable.Create(ctx, ec)
	assert.NoError(t, err)
	assert.Equal(t, key, ec.Key)

	got, found, err := immutable.GetByKey(ctx, key)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Shared", got.Name())
	assert.True(t, got.IsExempt())

	assert.NoError(t, immutable.DeleteByKey(ctx, key))
	_, found, err = mutable.GetByKey(ctx, key)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestClassificationRepository_cancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	subject := memory.NewClassificationRepository(memory.NewMemory())

	_, err := subject.Create(ctx, &hr.EmployeeClassification{Name: "Cancelled"})
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = subject.GetByKey(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, repository.MissingKeyNoOp, subject.MissingKeyPolicy())
}

func TestDivisionRepository_Departments(t *testing.T) {
	subject := memory.DivisionRepository{Memory: memory.NewMemory()}
	for _, d := range hr.SeedDivisions {
		got, err := subject.Departments(context.Background(), d.Key)
		assert.NoError(t, err)
		var want []hr.Department
		for _, dep := range hr.SeedDepartments {
			if dep.DivisionKey == d.Key {
				want = append(want, dep)
			}
		}
		assert.Equal(t, want, got)
	}

	got, err := subject.Departments(context.Background(), 4242)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
