package repositorycontract

import (
	"context"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/ormcookbook/recipes/port/repository/async"
	"github.com/ormcookbook/recipes/port/repository/repositorytest"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// SingleModelCrudAsync certifies the asynchronous form of the simple CRUD recipe.
// Every behavior of SingleModelCrud is asserted through awaited futures.
func SingleModelCrudAsync[M hr.Classification](subject async.SingleModelCrud[M], opts ...Option[M]) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)
	awaited := awaitedRepository[M]{Async: subject}
	singleModelCrud[M](s, awaited, c)

	s.Describe("#CreateAsync", func(s *testcase.Spec) {
		s.Then("futures in flight at the same time resolve to distinct keys", func(t *testcase.T) {
			ctx := c.MakeContext(t)
			var fs []*async.Future[int]
			for i := 0; i < max(c.Concurrency, 2); i++ {
				fixture := c.scenario(t).CreateWithValues(c.MakeName(t), t.Random.Bool(), t.Random.Bool())
				fs = append(fs, subject.CreateAsync(ctx, fixture))
			}
			keys, err := async.AwaitAll(ctx, fs...)
			for _, k := range keys {
				if k != 0 {
					t.Cleanup(func() { repositorytest.TryDelete(t, awaited, context.Background(), k) })
				}
			}
			assert.NoError(t, err)
			seen := make(map[int]struct{})
			for _, k := range keys {
				_, ok := seen[k]
				assert.False(t, ok, assert.MessageF("key %d was resolved by more than one future", k))
				seen[k] = struct{}{}
			}
		})

		s.Then("a created model is visible once its future resolved", func(t *testcase.T) {
			ctx := c.MakeContext(t)
			name := c.MakeName(t)
			k, err := subject.CreateAsync(ctx, c.scenario(t).CreateWithValues(name, false, true)).Await(ctx)
			assert.NoError(t, err)
			t.Cleanup(func() { repositorytest.TryDelete(t, awaited, context.Background(), k) })

			lookup, err := subject.FindByNameAsync(ctx, name).Await(ctx)
			assert.NoError(t, err)
			assert.True(t, lookup.Found)
			repositorytest.HasValues(t, lookup.Model, k, name, false, true)
		})
	})

	return s.AsSuite("SingleModelCrudAsync")
}

// awaitedRepository drives an asynchronous repository through the synchronous contract.
type awaitedRepository[M any] struct {
	Async async.SingleModelCrud[M]
}

var _ repository.SingleModelCrud[any] = awaitedRepository[any]{}

func (r awaitedRepository[M]) Create(ctx context.Context, model M) (int, error) {
	return r.Async.CreateAsync(ctx, model).Await(ctx)
}

func (r awaitedRepository[M]) GetByKey(ctx context.Context, key int) (M, bool, error) {
	l, err := r.Async.GetByKeyAsync(ctx, key).Await(ctx)
	return l.Model, l.Found, err
}

func (r awaitedRepository[M]) GetAll(ctx context.Context) ([]M, error) {
	return r.Async.GetAllAsync(ctx).Await(ctx)
}

func (r awaitedRepository[M]) FindByName(ctx context.Context, name string) (M, bool, error) {
	l, err := r.Async.FindByNameAsync(ctx, name).Await(ctx)
	return l.Model, l.Found, err
}

func (r awaitedRepository[M]) Update(ctx context.Context, model M) error {
	_, err := r.Async.UpdateAsync(ctx, model).Await(ctx)
	return err
}

func (r awaitedRepository[M]) Delete(ctx context.Context, model M) error {
	_, err := r.Async.DeleteAsync(ctx, model).Await(ctx)
	return err
}

func (r awaitedRepository[M]) DeleteByKey(ctx context.Context, key int) error {
	_, err := r.Async.DeleteByKeyAsync(ctx, key).Await(ctx)
	return err
}
