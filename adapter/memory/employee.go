package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// EmployeeRepository implements the Sorting recipe.
type EmployeeRepository struct {
	Memory *Memory
}

var _ repository.Sorting[*hr.EmployeeSimple] = EmployeeRepository{}

// InsertBatch stores every employee atomically.
func (r EmployeeRepository) InsertBatch(ctx context.Context, es []*hr.EmployeeSimple) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, e := range es {
		if e == nil {
			return repository.ErrNilModel("InsertBatch")
		}
	}
	m := r.Memory
	m.m.Lock()
	defer m.m.Unlock()
	for _, e := range es {
		e.Key = m.nextKey()
		m.employees[e.Key] = *e
	}
	logger.Debug(ctx, "memory employees inserted", logging.Field("count", len(es)))
	return nil
}

func (r EmployeeRepository) byLastName(ctx context.Context, lastName string, compare func(a, b *hr.EmployeeSimple) int) ([]*hr.EmployeeSimple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := r.Memory
	m.m.RLock()
	var out []*hr.EmployeeSimple
	for _, e := range m.employees {
		if e.LastName == lastName {
			out = append(out, &e)
		}
	}
	m.m.RUnlock()
	slices.SortFunc(out, func(a, b *hr.EmployeeSimple) int {
		if c := compare(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out, nil
}

func (r EmployeeRepository) SortByFirstName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	return r.byLastName(ctx, lastName, hr.CompareFirstName)
}

func (r EmployeeRepository) SortByMiddleNameDescFirstName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	return r.byLastName(ctx, lastName, hr.CompareMiddleNameDescFirstName)
}

func (r EmployeeRepository) SortByLastNameFirstNameMiddleName(ctx context.Context, lastName string) ([]*hr.EmployeeSimple, error) {
	return r.byLastName(ctx, lastName, hr.CompareLastNameFirstNameMiddleName)
}

func (r EmployeeRepository) DeleteByLastName(ctx context.Context, lastName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := r.Memory
	m.m.Lock()
	defer m.m.Unlock()
	for key, e := range m.employees {
		if e.LastName == lastName {
			delete(m.employees, key)
		}
	}
	return nil
}
