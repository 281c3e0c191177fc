package async

import (
	"context"

	"github.com/ormcookbook/recipes/port/repository"
)

type SingleModelCrud[M any] interface {
	CreateAsync(ctx context.Context, model M) *Future[int]
	GetByKeyAsync(ctx context.Context, key int) *Future[Lookup[M]]
	GetAllAsync(ctx context.Context) *Future[[]M]
	FindByNameAsync(ctx context.Context, name string) *Future[Lookup[M]]
	UpdateAsync(ctx context.Context, model M) *Future[struct{}]
	DeleteAsync(ctx context.Context, model M) *Future[struct{}]
	DeleteByKeyAsync(ctx context.Context, key int) *Future[struct{}]
}

// Wrap turns a synchronous repository into its asynchronous form.
func Wrap[M any](r repository.SingleModelCrud[M]) *Repository[M] {
	return &Repository[M]{Sync: r}
}

// Repository runs each operation of the synchronous repository on its own goroutine.
type Repository[M any] struct {
	Sync repository.SingleModelCrud[M]
}

var _ SingleModelCrud[any] = &Repository[any]{}

func (r *Repository[M]) CreateAsync(ctx context.Context, model M) *Future[int] {
	return Go(func() (int, error) { return r.Sync.Create(ctx, model) })
}

func (r *Repository[M]) GetByKeyAsync(ctx context.Context, key int) *Future[Lookup[M]] {
	return Go(func() (Lookup[M], error) {
		m, found, err := r.Sync.GetByKey(ctx, key)
		return Lookup[M]{Model: m, Found: found}, err
	})
}

func (r *Repository[M]) GetAllAsync(ctx context.Context) *Future[[]M] {
	return Go(func() ([]M, error) { return r.Sync.GetAll(ctx) })
}

func (r *Repository[M]) FindByNameAsync(ctx context.Context, name string) *Future[Lookup[M]] {
	return Go(func() (Lookup[M], error) {
		m, found, err := r.Sync.FindByName(ctx, name)
		return Lookup[M]{Model: m, Found: found}, err
	})
}

func (r *Repository[M]) UpdateAsync(ctx context.Context, model M) *Future[struct{}] {
	return Go(func() (struct{}, error) { return struct{}{}, r.Sync.Update(ctx, model) })
}

func (r *Repository[M]) DeleteAsync(ctx context.Context, model M) *Future[struct{}] {
	return Go(func() (struct{}, error) { return struct{}{}, r.Sync.Delete(ctx, model) })
}

func (r *Repository[M]) DeleteByKeyAsync(ctx context.Context, key int) *Future[struct{}] {
	return Go(func() (struct{}, error) { return struct{}{}, r.Sync.DeleteByKey(ctx, key) })
}
