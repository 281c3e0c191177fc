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

// Immutable certifies the CRUD recipe of an immutable model.
// On top of the SingleModelCrud behaviors,
// it asserts that neither Create nor an update changes an existing instance.
func Immutable[M hr.Classification](subject repository.ImmutableCrud[M], opts ...Option[M]) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)
	singleModelCrud[M](s, subject, c)

	s.Describe("instance immutability", func(s *testcase.Spec) {
		var (
			name       = testcase.Let(s, func(t *testcase.T) string { return c.MakeName(t) })
			isExempt   = testcase.Let(s, func(t *testcase.T) bool { return t.Random.Bool() })
			isEmployee = testcase.Let(s, func(t *testcase.T) bool { return t.Random.Bool() })
			model      = testcase.Let(s, func(t *testcase.T) M {
				return c.scenario(t).CreateWithValues(name.Get(t), isExempt.Get(t), isEmployee.Get(t))
			})
		)

		s.Then("Create doesn't modify its argument", func(t *testcase.T) {
			m := model.Get(t)
			before := m.EntityKey()
			repositorytest.Create[M](t, subject, c.MakeContext(t), m)
			repositorytest.HasValues(t, m, before, name.Get(t), isExempt.Get(t), isEmployee.Get(t))
		})

		s.Then("updating leaves the original instance unchanged", func(t *testcase.T) {
			k := repositorytest.Create[M](t, subject, c.MakeContext(t), model.Get(t))
			original := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), k)
			newName := "Updated " + uuid.NewString()

			updated := c.scenario(t).UpdateWithValues(original, newName, !isExempt.Get(t), !isEmployee.Get(t))
			repositorytest.HasValues(t, original, k, name.Get(t), isExempt.Get(t), isEmployee.Get(t))
			repositorytest.HasValues(t, updated, k, newName, !isExempt.Get(t), !isEmployee.Get(t))

			assert.NoError(t, subject.Update(c.MakeContext(t), updated))
			repositorytest.HasValues(t, original, k, name.Get(t), isExempt.Get(t), isEmployee.Get(t))

			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), k)
			repositorytest.HasValues(t, got, k, newName, !isExempt.Get(t), !isEmployee.Get(t))
		})

		s.Then("the update of a nil original is a programming error", func(t *testcase.T) {
			out := testcase.Sandbox(func() {
				c.scenario(t).UpdateWithValues(*new(M), name.Get(t), true, true)
			})
			assert.False(t, out.OK)
		})
	})

	return s.AsSuite("Immutable")
}
