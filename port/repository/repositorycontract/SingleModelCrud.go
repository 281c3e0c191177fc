package repositorycontract

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/repositorytest"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// SingleModelCrud certifies the simple CRUD recipe.
func SingleModelCrud[M hr.Classification](subject repository.SingleModelCrud[M], opts ...Option[M]) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)
	singleModelCrud(s, subject, c)
	return s.AsSuite("SingleModelCrud")
}

func singleModelCrud[M hr.Classification](s *testcase.Spec, subject repository.SingleModelCrud[M], c Config[M]) {
	var (
		name       = testcase.Let(s, func(t *testcase.T) string { return c.MakeName(t) })
		isExempt   = testcase.Let(s, func(t *testcase.T) bool { return t.Random.Bool() })
		isEmployee = testcase.Let(s, func(t *testcase.T) bool { return t.Random.Bool() })
		model      = testcase.Let(s, func(t *testcase.T) M {
			return c.scenario(t).CreateWithValues(name.Get(t), isExempt.Get(t), isEmployee.Get(t))
		})
		key = testcase.Let(s, func(t *testcase.T) int {
			return repositorytest.Create[M](t, subject, c.MakeContext(t), model.Get(t))
		})
	)

	s.Describe("#Create", func(s *testcase.Spec) {
		act := func(t *testcase.T, m M) (int, error) {
			return subject.Create(c.MakeContext(t), m)
		}

		s.Then("it returns a generated key, and the model is readable by key and by name", func(t *testcase.T) {
			k := key.Get(t)
			repositorytest.IsGenerated(t, c.KeyThreshold, k)

			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), k)
			repositorytest.HasValues(t, got, k, name.Get(t), isExempt.Get(t), isEmployee.Get(t))

			byName, found, err := subject.FindByName(c.MakeContext(t), name.Get(t))
			assert.NoError(t, err, assert.Message("step: FindByName"))
			assert.True(t, found, assert.MessageF("step: FindByName(%q) expected to find the created model", name.Get(t)))
			repositorytest.HasValues(t, byName, k, name.Get(t), isExempt.Get(t), isEmployee.Get(t))
		})

		s.Then("each created model receives a distinct key", func(t *testcase.T) {
			k1 := key.Get(t)
			oth := c.scenario(t).CreateWithValues(c.MakeName(t), t.Random.Bool(), t.Random.Bool())
			k2 := repositorytest.Create[M](t, subject, c.MakeContext(t), oth)
			assert.NotEqual(t, k1, k2)
			repositorytest.IsGenerated(t, c.KeyThreshold, k2)
		})

		s.Then("concurrent creates never share a key", func(t *testcase.T) {
			var (
				m    sync.Mutex
				keys []int
				errs []error
				fns  []func()
			)
			for i := 0; i < max(c.Concurrency, 2); i++ {
				fixture := c.scenario(t).CreateWithValues(c.MakeName(t), t.Random.Bool(), t.Random.Bool())
				ctx := c.MakeContext(t)
				fns = append(fns, func() {
					k, err := subject.Create(ctx, fixture)
					m.Lock()
					defer m.Unlock()
					if err != nil {
						errs = append(errs, err)
						return
					}
					keys = append(keys, k)
				})
			}
			testcase.Race(fns[0], fns[1], fns[2:]...)
			for _, k := range keys {
				t.Cleanup(func() { repositorytest.TryDelete(t, subject, context.Background(), k) })
			}
			assert.Empty(t, errs)
			seen := make(map[int]struct{})
			for _, k := range keys {
				_, ok := seen[k]
				assert.False(t, ok, assert.MessageF("key %d was returned by more than one Create", k))
				seen[k] = struct{}{}
				repositorytest.IsGenerated(t, c.KeyThreshold, k)
			}
		})

		s.When("the model is nil", func(s *testcase.Spec) {
			s.Then("it fails with invalid argument", func(t *testcase.T) {
				_, err := act(t, *new(M))
				assert.ErrorIs(t, err, repository.ErrInvalidArgument)
			})
		})
	})

	s.Describe("#GetByKey", func(s *testcase.Spec) {
		s.Then("seed keys always return the same key field", func(t *testcase.T) {
			for _, seed := range c.SeedKeys {
				got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), seed)
				assert.Equal(t, seed, got.EntityKey(), assert.MessageF("step: GetByKey(%d)", seed))
			}
		})

		s.When("the key doesn't exist", func(s *testcase.Spec) {
			s.Before(func(t *testcase.T) {
				assert.NoError(t, subject.DeleteByKey(c.MakeContext(t), key.Get(t)))
			})

			s.Then("it reports absence without an error", func(t *testcase.T) {
				repositorytest.IsAbsent[M](t, subject, c.MakeContext(t), key.Get(t))
			})
		})
	})

	s.Describe("#GetAll", func(s *testcase.Spec) {
		key.EagerLoading(s)

		s.Then("it returns a non-empty result that lists the created model", func(t *testcase.T) {
			all, err := subject.GetAll(c.MakeContext(t))
			assert.NoError(t, err)
			assert.NotEmpty(t, all)
			assert.Contain(t, repositorytest.Keys(all), key.Get(t))
		})
	})

	s.Describe("#FindByName", func(s *testcase.Spec) {
		key.EagerLoading(s)

		s.Then("an unknown name is reported as absent", func(t *testcase.T) {
			_, found, err := subject.FindByName(c.MakeContext(t), "Unknown "+uuid.NewString())
			assert.NoError(t, err)
			assert.False(t, found)
		})

		s.Then("the lookup is case exact", func(t *testcase.T) {
			other := strings.ToUpper(name.Get(t))
			if other == name.Get(t) {
				t.Skip("name has no case to change")
			}
			_, found, err := subject.FindByName(c.MakeContext(t), other)
			assert.NoError(t, err)
			assert.False(t, found, assert.MessageF("FindByName(%q) matched %q", other, name.Get(t)))
		})
	})

	s.Describe("#Update", func(s *testcase.Spec) {
		var (
			newName       = testcase.Let(s, func(t *testcase.T) string { return "Updated " + uuid.NewString() })
			newIsExempt   = testcase.Let(s, isExempt.Get)
			newIsEmployee = testcase.Let(s, isEmployee.Get)
		)
		act := func(t *testcase.T) error {
			fetched := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
			updated := c.scenario(t).UpdateWithValues(fetched, newName.Get(t), newIsExempt.Get(t), newIsEmployee.Get(t))
			return subject.Update(c.MakeContext(t), updated)
		}

		s.Then("the new name is visible and the flags are unchanged", func(t *testcase.T) {
			assert.NoError(t, act(t), assert.Message("step: Update"))
			got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
			repositorytest.HasValues(t, got, key.Get(t), newName.Get(t), isExempt.Get(t), isEmployee.Get(t))
		})

		s.And("the flags are changed as well", func(s *testcase.Spec) {
			newIsExempt.Let(s, func(t *testcase.T) bool { return !isExempt.Get(t) })
			newIsEmployee.Let(s, func(t *testcase.T) bool { return !isEmployee.Get(t) })

			s.Then("every changed field is visible on reread", func(t *testcase.T) {
				assert.NoError(t, act(t))
				got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), key.Get(t))
				repositorytest.HasValues(t, got, key.Get(t), newName.Get(t), !isExempt.Get(t), !isEmployee.Get(t))
			})
		})

		s.And("another model is stored as well", func(s *testcase.Spec) {
			var (
				othName = testcase.Let(s, func(t *testcase.T) string { return c.MakeName(t) })
				othKey  = testcase.Let(s, func(t *testcase.T) int {
					oth := c.scenario(t).CreateWithValues(othName.Get(t), true, false)
					return repositorytest.Create[M](t, subject, c.MakeContext(t), oth)
				}).EagerLoading(s)
			)

			s.Then("the other model is not affected", func(t *testcase.T) {
				assert.NoError(t, act(t))
				got := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), othKey.Get(t))
				repositorytest.HasValues(t, got, othKey.Get(t), othName.Get(t), true, false)
			})
		})

		s.When("the model is nil", func(s *testcase.Spec) {
			s.Then("it fails with invalid argument", func(t *testcase.T) {
				assert.ErrorIs(t, subject.Update(c.MakeContext(t), *new(M)), repository.ErrInvalidArgument)
			})
		})
	})

	s.Describe("#Delete", func(s *testcase.Spec) {
		s.Then("the key is absent from GetByKey and GetAll afterwards", func(t *testcase.T) {
			k := key.Get(t)
			fetched := repositorytest.IsPresent[M](t, subject, c.MakeContext(t), k)
			assert.NoError(t, subject.Delete(c.MakeContext(t), fetched), assert.Message("step: Delete"))
			repositorytest.IsAbsent[M](t, subject, c.MakeContext(t), k)
			repositorytest.NotListed[M](t, subject, c.MakeContext(t), k)
		})

		s.When("the model is nil", func(s *testcase.Spec) {
			s.Then("it fails with invalid argument", func(t *testcase.T) {
				assert.ErrorIs(t, subject.Delete(c.MakeContext(t), *new(M)), repository.ErrInvalidArgument)
			})
		})
	})

	s.Describe("#DeleteByKey", func(s *testcase.Spec) {
		act := func(t *testcase.T) error {
			return subject.DeleteByKey(c.MakeContext(t), key.Get(t))
		}

		s.Then("the key is absent from GetByKey and GetAll afterwards", func(t *testcase.T) {
			assert.NoError(t, act(t), assert.Message("step: DeleteByKey"))
			repositorytest.IsAbsent[M](t, subject, c.MakeContext(t), key.Get(t))
			repositorytest.NotListed[M](t, subject, c.MakeContext(t), key.Get(t))
		})

		s.When("the key was already deleted", func(s *testcase.Spec) {
			s.Before(func(t *testcase.T) {
				assert.Must(t).NoError(act(t))
			})

			switch c.MissingKeyPolicy {
			case repository.MissingKeyNotFound:
				s.Then("it fails with not found", func(t *testcase.T) {
					assert.ErrorIs(t, act(t), repository.ErrNotFound)
				})
			default:
				s.Then("it is a no-op", func(t *testcase.T) {
					assert.NoError(t, act(t))
				})
			}
		})
	})

	s.Test("create, find by name, update, then delete by key", func(t *testcase.T) {
		const (
			createdName = "Test 123456789"
			updatedName = "Updated 987654321"
		)
		ctx := c.MakeContext(t)
		nameTaken := func() bool {
			for _, n := range []string{createdName, updatedName} {
				_, found, err := subject.FindByName(ctx, n)
				assert.NoError(t, err)
				if found {
					return true
				}
			}
			return false
		}
		// the names are fixed, so rows owned by someone else are left alone
		if nameTaken() {
			t.Skipf("%q or %q is already stored", createdName, updatedName)
		}

		exempt, employee := t.Random.Bool(), t.Random.Bool()
		k, err := subject.Create(ctx, c.scenario(t).CreateWithValues(createdName, exempt, employee))
		if err != nil && nameTaken() {
			t.Skipf("%q was stored concurrently", createdName)
		}
		assert.NoError(t, err, assert.Message("step: Create"))
		t.Cleanup(func() { repositorytest.TryDelete(t, subject, context.Background(), k) })
		repositorytest.IsGenerated(t, c.KeyThreshold, k)

		byName, found, err := subject.FindByName(ctx, createdName)
		assert.NoError(t, err)
		assert.True(t, found)
		repositorytest.HasValues(t, byName, k, createdName, exempt, employee)

		updated := c.scenario(t).UpdateWithValues(byName, updatedName, exempt, employee)
		assert.NoError(t, subject.Update(ctx, updated))
		got := repositorytest.IsPresent[M](t, subject, ctx, k)
		repositorytest.HasValues(t, got, k, updatedName, exempt, employee)

		assert.NoError(t, subject.DeleteByKey(ctx, k))
		repositorytest.NotListed[M](t, subject, ctx, k)
	})
}
