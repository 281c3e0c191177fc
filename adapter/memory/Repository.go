package memory

import (
	"context"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

const tableEmployeeClassification = "EmployeeClassification"

func NewClassificationRepository(m *Memory) *ClassificationRepository {
	return &ClassificationRepository{Memory: m}
}

// ClassificationRepository implements the SingleModelCrud and PartialUpdate recipes
// for the mutable hr.EmployeeClassification model.
type ClassificationRepository struct {
	// Memory is the backing store for this Repository.
	Memory *Memory
	// StrictDelete [optional] makes DeleteByKey fail with repository.ErrNotFound for an absent key.
	StrictDelete bool
}

var (
	_ repository.SingleModelCrud[*hr.EmployeeClassification] = &ClassificationRepository{}
	_ repository.PartialUpdate[*hr.EmployeeClassification]   = &ClassificationRepository{}
)

func (r *ClassificationRepository) MissingKeyPolicy() repository.MissingKeyPolicy {
	if r.StrictDelete {
		return repository.MissingKeyNotFound
	}
	return repository.MissingKeyNoOp
}

func (r *ClassificationRepository) Create(ctx context.Context, ec *hr.EmployeeClassification) (int, error) {
	if ec == nil {
		return 0, repository.ErrNilModel("Create")
	}
	key, err := r.Memory.insertClassification(ctx, *ec)
	if err != nil {
		return 0, err
	}
	ec.Key = key
	logger.Debug(ctx, "memory classification created", logging.Field("key", key))
	return key, nil
}

func (r *ClassificationRepository) GetByKey(ctx context.Context, key int) (*hr.EmployeeClassification, bool, error) {
	ec, found, err := r.Memory.getClassification(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	return &ec, true, nil
}

func (r *ClassificationRepository) GetAll(ctx context.Context) ([]*hr.EmployeeClassification, error) {
	all, err := r.Memory.allClassifications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*hr.EmployeeClassification, 0, len(all))
	for _, ec := range all {
		out = append(out, &ec)
	}
	return out, nil
}

func (r *ClassificationRepository) FindByName(ctx context.Context, name string) (*hr.EmployeeClassification, bool, error) {
	ec, found, err := r.Memory.findClassification(ctx, name)
	if err != nil || !found {
		return nil, false, err
	}
	return &ec, true, nil
}

func (r *ClassificationRepository) Update(ctx context.Context, ec *hr.EmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Update")
	}
	v := *ec
	return r.Memory.patchClassification(ctx, ec.Key, func(stored *hr.EmployeeClassification) { *stored = v })
}

func (r *ClassificationRepository) Delete(ctx context.Context, ec *hr.EmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Delete")
	}
	return r.DeleteByKey(ctx, ec.Key)
}

func (r *ClassificationRepository) DeleteByKey(ctx context.Context, key int) error {
	found, err := r.Memory.deleteClassification(ctx, key)
	if err != nil {
		return err
	}
	if !found && r.StrictDelete {
		return repository.ErrMissingKey(tableEmployeeClassification, key)
	}
	logger.Debug(ctx, "memory classification deleted", logging.Field("key", key), logging.Field("found", found))
	return nil
}

func (r *ClassificationRepository) UpdateName(ctx context.Context, msg *hr.EmployeeClassificationNameUpdater) error {
	if msg == nil {
		return repository.ErrNilMessage("UpdateName")
	}
	return r.Memory.patchClassification(ctx, msg.Key, msg.Apply)
}

func (r *ClassificationRepository) UpdateFlags(ctx context.Context, msg *hr.EmployeeClassificationFlagsUpdater) error {
	if msg == nil {
		return repository.ErrNilMessage("UpdateFlags")
	}
	return r.Memory.patchClassification(ctx, msg.Key, msg.Apply)
}

func (r *ClassificationRepository) UpdateFlagsByKey(ctx context.Context, key int, isExempt, isEmployee bool) error {
	return r.UpdateFlags(ctx, &hr.EmployeeClassificationFlagsUpdater{Key: key, IsExempt: isExempt, IsEmployee: isEmployee})
}

func NewReadOnlyClassificationRepository(m *Memory) *ReadOnlyClassificationRepository {
	return &ReadOnlyClassificationRepository{Memory: m}
}

// ReadOnlyClassificationRepository implements the Immutable recipe.
// Stored rows are converted into new hr.ReadOnlyEmployeeClassification instances on every read.
type ReadOnlyClassificationRepository struct {
	Memory *Memory
}

var _ repository.ImmutableCrud[*hr.ReadOnlyEmployeeClassification] = &ReadOnlyClassificationRepository{}

func toReadOnly(ec hr.EmployeeClassification) *hr.ReadOnlyEmployeeClassification {
	return hr.NewReadOnlyEmployeeClassification(ec.Key, ec.Name, ec.IsExempt, ec.IsEmployee)
}

func fromReadOnly(ec *hr.ReadOnlyEmployeeClassification) hr.EmployeeClassification {
	return hr.EmployeeClassification{Key: ec.Key(), Name: ec.Name(), IsExempt: ec.IsExempt(), IsEmployee: ec.IsEmployee()}
}

func (r *ReadOnlyClassificationRepository) Create(ctx context.Context, ec *hr.ReadOnlyEmployeeClassification) (int, error) {
	if ec == nil {
		return 0, repository.ErrNilModel("Create")
	}
	return r.Memory.insertClassification(ctx, fromReadOnly(ec))
}

func (r *ReadOnlyClassificationRepository) GetByKey(ctx context.Context, key int) (*hr.ReadOnlyEmployeeClassification, bool, error) {
	ec, found, err := r.Memory.getClassification(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	return toReadOnly(ec), true, nil
}

func (r *ReadOnlyClassificationRepository) GetAll(ctx context.Context) ([]*hr.ReadOnlyEmployeeClassification, error) {
	all, err := r.Memory.allClassifications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*hr.ReadOnlyEmployeeClassification, 0, len(all))
	for _, ec := range all {
		out = append(out, toReadOnly(ec))
	}
	return out, nil
}

func (r *ReadOnlyClassificationRepository) FindByName(ctx context.Context, name string) (*hr.ReadOnlyEmployeeClassification, bool, error) {
	ec, found, err := r.Memory.findClassification(ctx, name)
	if err != nil || !found {
		return nil, false, err
	}
	return toReadOnly(ec), true, nil
}

func (r *ReadOnlyClassificationRepository) Update(ctx context.Context, ec *hr.ReadOnlyEmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Update")
	}
	v := fromReadOnly(ec)
	return r.Memory.patchClassification(ctx, v.Key, func(stored *hr.EmployeeClassification) { *stored = v })
}

func (r *ReadOnlyClassificationRepository) Delete(ctx context.Context, ec *hr.ReadOnlyEmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Delete")
	}
	return r.DeleteByKey(ctx, ec.Key())
}

func (r *ReadOnlyClassificationRepository) DeleteByKey(ctx context.Context, key int) error {
	_, err := r.Memory.deleteClassification(ctx, key)
	return err
}
