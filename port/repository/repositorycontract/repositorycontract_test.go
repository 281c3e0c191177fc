package repositorycontract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ormcookbook/recipes/adapter/memory"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/repositorycontract"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

type Classification = *hr.EmployeeClassification

func anyFailed(dtb *testcase.FakeTB) bool {
	if dtb.IsFailed {
		return true
	}
	for _, sub := range dtb.Tests {
		if anyFailed(sub) {
			return true
		}
	}
	return false
}

// assertRejected runs the contract on a fake testing.TB and expects at least one failing case.
func assertRejected(tb testing.TB, c contract.Contract) {
	tb.Helper()
	dtb := &testcase.FakeTB{}
	s := testcase.NewSpec(dtb)
	s.Context("subject", c.Spec)
	testcase.Sandbox(s.Finish)
	assert.True(tb, anyFailed(dtb), assert.Message("the contract was expected to reject the broken repository"))
}

type ignoresUpdate struct {
	*memory.ClassificationRepository
}

func (ignoresUpdate) Update(context.Context, *hr.EmployeeClassification) error {
	return nil
}

type caseInsensitiveNames struct {
	*memory.ClassificationRepository
}

func (r caseInsensitiveNames) FindByName(ctx context.Context, name string) (*hr.EmployeeClassification, bool, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, ec := range all {
		if strings.EqualFold(ec.Name, name) {
			return ec, true, nil
		}
	}
	return nil, false, nil
}

type acceptsNil struct {
	*memory.ClassificationRepository
}

func (r acceptsNil) Create(ctx context.Context, ec *hr.EmployeeClassification) (int, error) {
	if ec == nil {
		return 0, nil
	}
	return r.ClassificationRepository.Create(ctx, ec)
}

type nameUpdateResetsFlags struct {
	*memory.ClassificationRepository
}

func (r nameUpdateResetsFlags) UpdateName(ctx context.Context, msg *hr.EmployeeClassificationNameUpdater) error {
	if msg == nil {
		return repository.ErrNilMessage("UpdateName")
	}
	return r.Update(ctx, &hr.EmployeeClassification{Key: msg.Key, Name: msg.Name})
}

type unorderedPeople struct {
	memory.EmployeeRepository
}

func (r unorderedPeople) SortByFirstName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	es, err := r.EmployeeRepository.SortByFirstName(ctx, lastName)
	for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
		es[i], es[j] = es[j], es[i]
	}
	return es, err
}

func TestContracts_rejectBrokenRepositories(t *testing.T) {
	mutable := repositorycontract.Config[Classification]{Scenario: repositorycontract.MutableScenario{}}
	newRepo := func() *memory.ClassificationRepository {
		return memory.NewClassificationRepository(memory.NewMemory())
	}

	t.Run("update is ignored", func(t *testing.T) {
		assertRejected(t, repositorycontract.SingleModelCrud[Classification](ignoresUpdate{newRepo()}, mutable))
	})

	t.Run("name lookup ignores case", func(t *testing.T) {
		assertRejected(t, repositorycontract.SingleModelCrud[Classification](caseInsensitiveNames{newRepo()}, mutable))
	})

	t.Run("nil model is accepted", func(t *testing.T) {
		assertRejected(t, repositorycontract.SingleModelCrud[Classification](acceptsNil{newRepo()}, mutable))
	})

	t.Run("name update resets the flags", func(t *testing.T) {
		assertRejected(t, repositorycontract.PartialUpdate[Classification](nameUpdateResetsFlags{newRepo()}, mutable))
	})

	t.Run("sort order is reversed", func(t *testing.T) {
		assertRejected(t, repositorycontract.Sorting[*hr.EmployeeSimple](unorderedPeople{memory.EmployeeRepository{Memory: memory.NewMemory()}},
			repositorycontract.Config[*hr.EmployeeSimple]{People: repositorycontract.EmployeeSimpleScenario{}}))
	})
}

func TestContracts_acceptMemoryOnFakeTB(t *testing.T) {
	dtb := &testcase.FakeTB{}
	s := testcase.NewSpec(dtb)
	s.Context("subject", repositorycontract.SingleModelCrud[Classification](memory.NewClassificationRepository(memory.NewMemory()),
		repositorycontract.Config[Classification]{Scenario: repositorycontract.MutableScenario{}}).Spec)
	testcase.Sandbox(s.Finish)
	assert.False(t, anyFailed(dtb), assert.Message(dtb.Logs.String()))
}

func TestMissingKey(t *testing.T) {
	var c repositorycontract.Config[Classification]
	c.Init()
	repositorycontract.MissingKey[Classification](repository.MissingKeyNotFound).Configure(&c)
	assert.Equal(t, repository.MissingKeyNotFound, c.MissingKeyPolicy)
	assert.Equal(t, repository.GeneratedKeyThreshold, c.KeyThreshold)
	assert.Equal(t, 8, c.Concurrency)
}

func TestSingleModelCrud_leavesForeignRowsWithTheFixedNamesAlone(t *testing.T) {
	ctx := context.Background()
	subject := memory.NewClassificationRepository(memory.NewMemory())
	foreign := &hr.EmployeeClassification{Name: "Test 123456789", IsExempt: true}
	key, err := subject.Create(ctx, foreign)
	assert.NoError(t, err)

	testcase.RunSuite(t, repositorycontract.SingleModelCrud[Classification](subject,
		repositorycontract.Config[Classification]{Scenario: repositorycontract.MutableScenario{}}))

	got, found, err := subject.GetByKey(ctx, key)
	assert.NoError(t, err)
	assert.True(t, found, assert.Message("the row created outside of the suite was removed"))
	assert.Equal(t, "Test 123456789", got.Name)
	assert.True(t, got.IsExempt)
}
