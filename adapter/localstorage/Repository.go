package localstorage

import (
	"cmp"
	"context"
	"slices"

	"github.com/boltdb/bolt"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// ClassificationRepository implements the SingleModelCrud recipe.
// Deleting an absent key is reported with repository.ErrNotFound.
type ClassificationRepository struct {
	Local *Local
}

var _ repository.SingleModelCrud[*hr.EmployeeClassification] = ClassificationRepository{}

func (r ClassificationRepository) MissingKeyPolicy() repository.MissingKeyPolicy {
	return repository.MissingKeyNotFound
}

func (r ClassificationRepository) Create(ctx context.Context, ec *hr.EmployeeClassification) (int, error) {
	if ec == nil {
		return 0, repository.ErrNilModel("Create")
	}
	var key int
	err := r.Local.update(ctx, func(tx *bolt.Tx) error {
		k, err := nextKey(tx.Bucket(bucketClassification))
		if err != nil {
			return err
		}
		row := *ec
		row.Key = k
		if err := putClassification(tx, row); err != nil {
			return err
		}
		key = k
		return nil
	})
	if err != nil {
		return 0, err
	}
	ec.Key = key
	logger.Debug(ctx, "bolt classification created", logging.Field("key", key))
	return key, nil
}

func (r ClassificationRepository) GetByKey(ctx context.Context, key int) (*hr.EmployeeClassification, bool, error) {
	var (
		ec    hr.EmployeeClassification
		found bool
	)
	err := r.Local.view(ctx, func(tx *bolt.Tx) (err error) {
		ec, found, err = getClassification(tx, key)
		return err
	})
	if err != nil || !found {
		return nil, false, err
	}
	return &ec, true, nil
}

func (r ClassificationRepository) GetAll(ctx context.Context) ([]*hr.EmployeeClassification, error) {
	var out []*hr.EmployeeClassification
	err := r.Local.view(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket(bucketClassification).ForEach(func(_, data []byte) error {
			var ec hr.EmployeeClassification
			if err := decode(data, &ec); err != nil {
				return err
			}
			out = append(out, &ec)
			return nil
		})
	})
	return out, err
}

func (r ClassificationRepository) FindByName(ctx context.Context, name string) (*hr.EmployeeClassification, bool, error) {
	var (
		ec    hr.EmployeeClassification
		found bool
	)
	err := r.Local.view(ctx, func(tx *bolt.Tx) (err error) {
		key := tx.Bucket(bucketClassificationName).Get([]byte(name))
		if key == nil {
			return nil
		}
		data := tx.Bucket(bucketClassification).Get(key)
		if data == nil {
			return nil
		}
		found = true
		return decode(data, &ec)
	})
	if err != nil || !found {
		return nil, false, err
	}
	return &ec, true, nil
}

// Update overwrites the row with the model's key. A key without a row is left alone.
func (r ClassificationRepository) Update(ctx context.Context, ec *hr.EmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Update")
	}
	return r.Local.update(ctx, func(tx *bolt.Tx) error {
		if _, found, err := getClassification(tx, ec.Key); err != nil || !found {
			return err
		}
		return putClassification(tx, *ec)
	})
}

func (r ClassificationRepository) Delete(ctx context.Context, ec *hr.EmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Delete")
	}
	return r.DeleteByKey(ctx, ec.Key)
}

func (r ClassificationRepository) DeleteByKey(ctx context.Context, key int) error {
	return r.Local.update(ctx, func(tx *bolt.Tx) error {
		found, err := deleteClassification(tx, key)
		if err != nil {
			return err
		}
		if !found {
			return repository.ErrMissingKey("employee_classification", key)
		}
		return nil
	})
}

// EmployeeRepository implements the Sorting recipe.
// The bucket has no secondary index, so the reads scan it and sort in process.
type EmployeeRepository struct {
	Local *Local
}

var _ repository.Sorting[*hr.EmployeeSimple] = EmployeeRepository{}

func (r EmployeeRepository) InsertBatch(ctx context.Context, es []*hr.EmployeeSimple) error {
	for _, e := range es {
		if e == nil {
			return repository.ErrNilModel("InsertBatch")
		}
	}
	keys := make([]int, len(es))
	err := r.Local.update(ctx, func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEmployee)
		for i, e := range es {
			key, err := nextKey(b)
			if err != nil {
				return err
			}
			row := newEmployeeRow(*e)
			row.Key = key
			data, err := encode(row)
			if err != nil {
				return err
			}
			if err := b.Put(keyToBytes(key), data); err != nil {
				return err
			}
			keys[i] = key
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i, e := range es {
		e.Key = keys[i]
	}
	return nil
}

func (r EmployeeRepository) byLastName(ctx context.Context, lastName string, compare func(a, b *hr.EmployeeSimple) int) ([]*hr.EmployeeSimple, error) {
	var out []*hr.EmployeeSimple
	err := r.Local.view(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEmployee).ForEach(func(_, data []byte) error {
			var row employeeRow
			if err := decode(data, &row); err != nil {
				return err
			}
			if row.LastName == lastName {
				out = append(out, row.model())
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b *hr.EmployeeSimple) int {
		return cmp.Or(compare(a, b), cmp.Compare(a.Key, b.Key))
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
	return r.Local.update(ctx, func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEmployee)
		var keys [][]byte
		err := b.ForEach(func(k, data []byte) error {
			var row employeeRow
			if err := decode(data, &row); err != nil {
				return err
			}
			if row.LastName == lastName {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
