package hrsql

import (
	"context"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/pkg/flsql"
)

const tableEmployeeClassification = "employee_classification"

func NewClassificationRepository(conn flsql.Connection, d Dialect) *ClassificationRepository {
	return &ClassificationRepository{Connection: conn, Dialect: d}
}

// ClassificationRepository implements the SingleModelCrud and PartialUpdate recipes
// for the mutable hr.EmployeeClassification model.
type ClassificationRepository struct {
	Connection flsql.Connection
	Dialect    Dialect
	// StrictDelete [optional] makes DeleteByKey fail with repository.ErrNotFound for an absent key.
	StrictDelete bool
}

var (
	_ repository.SingleModelCrud[*hr.EmployeeClassification] = &ClassificationRepository{}
	_ repository.PartialUpdate[*hr.EmployeeClassification]   = &ClassificationRepository{}
)

func (r *ClassificationRepository) queries() table {
	return table{Connection: r.Connection, Dialect: r.Dialect}
}

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
	key, err := r.queries().createClassification(ctx, *ec)
	if err != nil {
		return 0, err
	}
	ec.Key = key
	return key, nil
}

func (r *ClassificationRepository) GetByKey(ctx context.Context, key int) (*hr.EmployeeClassification, bool, error) {
	ec, found, err := r.queries().getClassification(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	return &ec, true, nil
}

func (r *ClassificationRepository) GetAll(ctx context.Context) ([]*hr.EmployeeClassification, error) {
	all, err := r.queries().allClassifications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*hr.EmployeeClassification, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *ClassificationRepository) FindByName(ctx context.Context, name string) (*hr.EmployeeClassification, bool, error) {
	ec, found, err := r.queries().findClassification(ctx, name)
	if err != nil || !found {
		return nil, false, err
	}
	return &ec, true, nil
}

func (r *ClassificationRepository) Update(ctx context.Context, ec *hr.EmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Update")
	}
	return r.queries().updateClassification(ctx, ec.Key, classificationColumns[1:], ec.Name, ec.IsExempt, ec.IsEmployee)
}

func (r *ClassificationRepository) Delete(ctx context.Context, ec *hr.EmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Delete")
	}
	return r.DeleteByKey(ctx, ec.Key)
}

func (r *ClassificationRepository) DeleteByKey(ctx context.Context, key int) error {
	found, err := r.queries().deleteClassification(ctx, key)
	if err != nil {
		return err
	}
	if !found && r.StrictDelete {
		return repository.ErrMissingKey(tableEmployeeClassification, key)
	}
	return nil
}

func (r *ClassificationRepository) UpdateName(ctx context.Context, msg *hr.EmployeeClassificationNameUpdater) error {
	if msg == nil {
		return repository.ErrNilMessage("UpdateName")
	}
	return r.queries().updateClassification(ctx, msg.Key, []string{"employee_classification_name"}, msg.Name)
}

func (r *ClassificationRepository) UpdateFlags(ctx context.Context, msg *hr.EmployeeClassificationFlagsUpdater) error {
	if msg == nil {
		return repository.ErrNilMessage("UpdateFlags")
	}
	return r.UpdateFlagsByKey(ctx, msg.Key, msg.IsExempt, msg.IsEmployee)
}

func (r *ClassificationRepository) UpdateFlagsByKey(ctx context.Context, key int, isExempt, isEmployee bool) error {
	return r.queries().updateClassification(ctx, key, []string{"is_exempt", "is_employee"}, isExempt, isEmployee)
}

func NewReadOnlyClassificationRepository(conn flsql.Connection, d Dialect) *ReadOnlyClassificationRepository {
	return &ReadOnlyClassificationRepository{Connection: conn, Dialect: d}
}

// ReadOnlyClassificationRepository implements the Immutable recipe.
type ReadOnlyClassificationRepository struct {
	Connection flsql.Connection
	Dialect    Dialect
}

var _ repository.ImmutableCrud[*hr.ReadOnlyEmployeeClassification] = &ReadOnlyClassificationRepository{}

func (r *ReadOnlyClassificationRepository) queries() table {
	return table{Connection: r.Connection, Dialect: r.Dialect}
}

func toReadOnly(ec hr.EmployeeClassification) *hr.ReadOnlyEmployeeClassification {
	return hr.NewReadOnlyEmployeeClassification(ec.Key, ec.Name, ec.IsExempt, ec.IsEmployee)
}

func (r *ReadOnlyClassificationRepository) Create(ctx context.Context, ec *hr.ReadOnlyEmployeeClassification) (int, error) {
	if ec == nil {
		return 0, repository.ErrNilModel("Create")
	}
	return r.queries().createClassification(ctx, hr.EmployeeClassification{
		Name:       ec.Name(),
		IsExempt:   ec.IsExempt(),
		IsEmployee: ec.IsEmployee(),
	})
}

func (r *ReadOnlyClassificationRepository) GetByKey(ctx context.Context, key int) (*hr.ReadOnlyEmployeeClassification, bool, error) {
	ec, found, err := r.queries().getClassification(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	return toReadOnly(ec), true, nil
}

func (r *ReadOnlyClassificationRepository) GetAll(ctx context.Context) ([]*hr.ReadOnlyEmployeeClassification, error) {
	all, err := r.queries().allClassifications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*hr.ReadOnlyEmployeeClassification, len(all))
	for i, ec := range all {
		out[i] = toReadOnly(ec)
	}
	return out, nil
}

func (r *ReadOnlyClassificationRepository) FindByName(ctx context.Context, name string) (*hr.ReadOnlyEmployeeClassification, bool, error) {
	ec, found, err := r.queries().findClassification(ctx, name)
	if err != nil || !found {
		return nil, false, err
	}
	return toReadOnly(ec), true, nil
}

func (r *ReadOnlyClassificationRepository) Update(ctx context.Context, ec *hr.ReadOnlyEmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Update")
	}
	return r.queries().updateClassification(ctx, ec.Key(), classificationColumns[1:], ec.Name(), ec.IsExempt(), ec.IsEmployee())
}

func (r *ReadOnlyClassificationRepository) Delete(ctx context.Context, ec *hr.ReadOnlyEmployeeClassification) error {
	if ec == nil {
		return repository.ErrNilModel("Delete")
	}
	return r.DeleteByKey(ctx, ec.Key())
}

func (r *ReadOnlyClassificationRepository) DeleteByKey(ctx context.Context, key int) error {
	_, err := r.queries().deleteClassification(ctx, key)
	return err
}

// Recipes bundles every recipe repository that shares one connection.
type Recipes struct {
	Classifications *ClassificationRepository
	ReadOnly        *ReadOnlyClassificationRepository
	Employees       EmployeeRepository
	Divisions       DivisionRepository
}

func NewRecipes(conn flsql.Connection, d Dialect) Recipes {
	return Recipes{
		Classifications: NewClassificationRepository(conn, d),
		ReadOnly:        NewReadOnlyClassificationRepository(conn, d),
		Employees:       EmployeeRepository{Connection: conn, Dialect: d},
		Divisions:       DivisionRepository{Connection: conn, Dialect: d},
	}
}
