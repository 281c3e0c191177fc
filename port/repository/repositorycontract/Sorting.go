package repositorycontract

import (
	"cmp"
	"context"

	"github.com/google/uuid"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/repositorytest"
	"go.llib.dev/frameless/pkg/pointer"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// Sorting certifies the sorted reads of the employee recipe.
// The fixture rows share a last name that is unique to the test,
// and they contain equal sort keys so the Entity Key tie-break is asserted as well.
func Sorting[M hr.Person](subject repository.Sorting[M], opts ...Option[M]) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)

	var (
		lastName = testcase.Let(s, func(t *testcase.T) string { return "Sort " + uuid.NewString() })
		people   = testcase.Let(s, func(t *testcase.T) []M {
			var (
				ps    = c.people(t)
				last  = lastName.Get(t)
				class = c.SeedKeys[0]
			)
			return []M{
				ps.CreatePerson("Bob", pointer.Of("Lee"), last, class),
				ps.CreatePerson("Ann", nil, last, class),
				ps.CreatePerson("Cid", pointer.Of("Ray"), last, class),
				ps.CreatePerson("Ann", pointer.Of("Lee"), last, class),
				ps.CreatePerson("Bob", nil, last, class),
				ps.CreatePerson("Ann", pointer.Of("Lee"), last, class),
				ps.CreatePerson("Eve", pointer.Of(""), last, class),
			}
		})
		inserted = testcase.Let(s, func(t *testcase.T) []M {
			ctx, last := c.MakeContext(t), lastName.Get(t)
			t.Cleanup(func() { _ = subject.DeleteByLastName(context.Background(), last) })
			assert.Must(t).NoError(subject.InsertBatch(ctx, people.Get(t)), assert.Message("step: InsertBatch"))
			return people.Get(t)
		}).EagerLoading(s)
	)

	thenOrdered := func(s *testcase.Spec, name string, read func(context.Context, string) ([]M, error), compare func(a, b M) int) {
		s.Describe(name, func(s *testcase.Spec) {
			s.Then("every row of the last name is returned in order with key ascending ties", func(t *testcase.T) {
				got, err := read(c.MakeContext(t), lastName.Get(t))
				assert.NoError(t, err)
				assert.Equal(t, len(inserted.Get(t)), len(got))
				assertOrdered(t, got, compare)
			})

			s.Then("the order is stable between reads", func(t *testcase.T) {
				first, err := read(c.MakeContext(t), lastName.Get(t))
				assert.NoError(t, err)
				second, err := read(c.MakeContext(t), lastName.Get(t))
				assert.NoError(t, err)
				assert.Equal(t, repositorytest.Keys(first), repositorytest.Keys(second))
			})

			s.Then("rows of other last names are not returned", func(t *testcase.T) {
				got, err := read(c.MakeContext(t), "Nobody "+uuid.NewString())
				assert.NoError(t, err)
				assert.Empty(t, got)
			})
		})
	}

	thenOrdered(s, "#SortByFirstName", subject.SortByFirstName, func(a, b M) int {
		af, _, _ := a.Names()
		bf, _, _ := b.Names()
		return cmp.Compare(af, bf)
	})

	thenOrdered(s, "#SortByMiddleNameDescFirstName", subject.SortByMiddleNameDescFirstName, func(a, b M) int {
		af, am, _ := a.Names()
		bf, bm, _ := b.Names()
		if c := compareMiddleDesc(am, bm); c != 0 {
			return c
		}
		return cmp.Compare(af, bf)
	})

	thenOrdered(s, "#SortByLastNameFirstNameMiddleName", subject.SortByLastNameFirstNameMiddleName, func(a, b M) int {
		af, am, al := a.Names()
		bf, bm, bl := b.Names()
		if c := cmp.Compare(al, bl); c != 0 {
			return c
		}
		if c := cmp.Compare(af, bf); c != 0 {
			return c
		}
		return compareMiddleAsc(am, bm)
	})

	s.Test("middle names read back as inserted, an empty one stays apart from a missing one", func(t *testcase.T) {
		want := make(map[int]*string)
		for _, p := range inserted.Get(t) {
			_, middle, _ := p.Names()
			want[p.EntityKey()] = middle
		}
		got, err := subject.SortByFirstName(c.MakeContext(t), lastName.Get(t))
		assert.NoError(t, err)
		for _, p := range got {
			_, middle, _ := p.Names()
			assert.Equal(t, want[p.EntityKey()], middle, assert.MessageF("middle name of key %d", p.EntityKey()))
		}
	})

	s.Describe("#DeleteByLastName", func(s *testcase.Spec) {
		s.Then("every row of the last name is removed", func(t *testcase.T) {
			assert.NoError(t, subject.DeleteByLastName(c.MakeContext(t), lastName.Get(t)))
			got, err := subject.SortByFirstName(c.MakeContext(t), lastName.Get(t))
			assert.NoError(t, err)
			assert.Empty(t, got)
		})
	})

	return s.AsSuite("Sorting")
}

func assertOrdered[M hr.Keyed](t *testcase.T, got []M, compare func(a, b M) int) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		prev, next := got[i-1], got[i]
		switch c := compare(prev, next); {
		case c < 0:
		case c == 0:
			assert.True(t, prev.EntityKey() < next.EntityKey(),
				assert.MessageF("equal sort keys at index %d expected to be ordered by key, got %d before %d", i, prev.EntityKey(), next.EntityKey()))
		default:
			t.Fatalf("rows at index %d and %d are out of order", i-1, i)
		}
	}
}

// compareMiddleDesc orders middle names descending with missing values last.
func compareMiddleDesc(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}

// compareMiddleAsc orders middle names ascending with missing values first.
func compareMiddleAsc(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}
