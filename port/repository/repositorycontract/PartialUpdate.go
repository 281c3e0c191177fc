package repositorycontract

import (
	"github.com/google/uuid"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/repositorytest"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// PartialUpdate certifies the recipe where changes arrive as sparse update messages.
// Every message shape is asserted independently,
// and each must leave the fields outside of its scope untouched.
func PartialUpdate[M hr.Classification](subject repository.PartialUpdate[M], opts ...Option[M]) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)

	var (
		name       = testcase.Let(s, func(t *testcase.T) string { return c.MakeName(t) })
		isExempt   = testcase.Let(s, func(t *testcase.T) bool { return t.Random.Bool() })
		isEmployee = testcase.Let(s, func(t *testcase.T) bool { return t.Random.Bool() })
		key        = testcase.Let(s, func(t *testcase.T) int {
			m := c.scenario(t).CreateWithValues(name.Get(t), isExempt.Get(t), isEmployee.Get(t))
			return repositorytest.Create[M](t, subject, c.MakeContext(t), m)
		})
	)

	s.Describe("#Create", func(s *testcase.Spec) {
		s.Then("the created model is readable by its generated key", func(t *testcase.T) {
			repositorytest.IsGenerated(t, c.KeyThreshold, key.Get(t))
			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
			repositorytest.HasValues(t, got, key.Get(t), name.Get(t), isExempt.Get(t), isEmployee.Get(t))
		})

		s.Then("a nil model is rejected with invalid argument", func(t *testcase.T) {
			_, err := subject.Create(c.MakeContext(t), *new(M))
			assert.ErrorIs(t, err, repository.ErrInvalidArgument)
		})
	})

	s.Describe("#UpdateName", func(s *testcase.Spec) {
		newName := testcase.Let(s, func(t *testcase.T) string { return "Updated " + uuid.NewString() })

		s.Then("only the name changes", func(t *testcase.T) {
			msg := &hr.EmployeeClassificationNameUpdater{Key: key.Get(t), Name: newName.Get(t)}
			assert.NoError(t, subject.UpdateName(c.MakeContext(t), msg), assert.Message("step: UpdateName"))

			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
			repositorytest.HasValues(t, got, key.Get(t), newName.Get(t), isExempt.Get(t), isEmployee.Get(t))
		})

		s.Then("a nil message is rejected with invalid argument", func(t *testcase.T) {
			assert.ErrorIs(t, subject.UpdateName(c.MakeContext(t), nil), repository.ErrInvalidArgument)
		})
	})

	s.Describe("#UpdateFlags", func(s *testcase.Spec) {
		s.Then("only the flags change", func(t *testcase.T) {
			msg := &hr.EmployeeClassificationFlagsUpdater{
				Key:        key.Get(t),
				IsExempt:   !isExempt.Get(t),
				IsEmployee: !isEmployee.Get(t),
			}
			assert.NoError(t, subject.UpdateFlags(c.MakeContext(t), msg), assert.Message("step: UpdateFlags"))

			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
			repositorytest.HasValues(t, got, key.Get(t), name.Get(t), !isExempt.Get(t), !isEmployee.Get(t))
		})

		s.Then("a nil message is rejected with invalid argument", func(t *testcase.T) {
			assert.ErrorIs(t, subject.UpdateFlags(c.MakeContext(t), nil), repository.ErrInvalidArgument)
		})
	})

	s.Describe("#UpdateFlagsByKey", func(s *testcase.Spec) {
		s.Then("only the flags change", func(t *testcase.T) {
			err := subject.UpdateFlagsByKey(c.MakeContext(t), key.Get(t), !isExempt.Get(t), !isEmployee.Get(t))
			assert.NoError(t, err, assert.Message("step: UpdateFlagsByKey"))

			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
			repositorytest.HasValues(t, got, key.Get(t), name.Get(t), !isExempt.Get(t), !isEmployee.Get(t))
		})
	})

	s.Test("name and flag updates compose without overwriting each other", func(t *testcase.T) {
		ctx := c.MakeContext(t)
		k := key.Get(t)
		newName := "Updated " + uuid.NewString()
		assert.NoError(t, subject.UpdateFlags(ctx, &hr.EmployeeClassificationFlagsUpdater{Key: k, IsExempt: true, IsEmployee: false}))
		assert.NoError(t, subject.UpdateName(ctx, &hr.EmployeeClassificationNameUpdater{Key: k, Name: newName}))

		got := repositorytest.IsPresent[M](t, subject, ctx, k)
		repositorytest.HasValues(t, got, k, newName, true, false)
	})

	s.Describe("#DeleteByKey", func(s *testcase.Spec) {
		s.Then("the key is absent afterwards", func(t *testcase.T) {
			assert.NoError(t, subject.DeleteByKey(c.MakeContext(t), key.Get(t)))
			repositorytest.IsAbsent[M](t, subject, c.MakeContext(t), key.Get(t))
		})
	})

	return s.AsSuite("PartialUpdate")
}
