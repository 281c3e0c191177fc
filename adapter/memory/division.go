package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
)

// DivisionRepository implements the ScalarValue recipe.
type DivisionRepository struct {
	Memory *Memory
}

var _ repository.ScalarValue = DivisionRepository{}

func (r DivisionRepository) GetDivisionKey(ctx context.Context, divisionName string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	r.Memory.m.RLock()
	defer r.Memory.m.RUnlock()
	for _, d := range r.Memory.divisions {
		if d.Name == divisionName {
			return d.Key, true, nil
		}
	}
	return 0, false, nil
}

func (r DivisionRepository) GetDivisionName(ctx context.Context, divisionKey int) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	r.Memory.m.RLock()
	defer r.Memory.m.RUnlock()
	d, ok := r.Memory.divisions[divisionKey]
	return d.Name, ok, nil
}

func (r DivisionRepository) GetDivisionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Memory.m.RLock()
	defer r.Memory.m.RUnlock()
	names := make([]string, 0, len(r.Memory.divisions))
	for _, d := range r.Memory.divisions {
		names = append(names, d.Name)
	}
	slices.Sort(names)
	return names, nil
}

// Departments lists the departments of a division ordered by key.
func (r DivisionRepository) Departments(ctx context.Context, divisionKey int) ([]hr.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Memory.m.RLock()
	defer r.Memory.m.RUnlock()
	var out []hr.Department
	for _, d := range r.Memory.departments {
		if d.DivisionKey == divisionKey {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b hr.Department) int { return cmp.Compare(a.Key, b.Key) })
	return out, nil
}
