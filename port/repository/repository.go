// Package repository defines the operation sets that a provider adapter must implement
// to be certified by the repositorycontract suites.
//
// The interfaces are intentionally small,
// and the recipe level contracts are compositions of them.
// Every operation accepts a context.Context, which the adapter passes to its storage collaborator.
package repository

import (
	"context"

	"github.com/ormcookbook/recipes/port/hr"
)

type Creator[M any] interface {
	// Create is a function that persists a new model and returns the store assigned Entity Key.
	//
	// A nil model must be rejected with ErrInvalidArgument before the storage is touched.
	// The returned key is unique, and it is never reused for another model.
	// Mutable models receive the new key as part of the call,
	// while immutable models are not modified.
	Create(ctx context.Context, model M) (key int, err error)
}

type KeyFinder[M any] interface {
	// GetByKey will return the current state of a model by its Entity Key.
	// A missing key is reported with found false, and it is not an error.
	GetByKey(ctx context.Context, key int) (_ M, found bool, _ error)
}

type AllFinder[M any] interface {
	// GetAll will return every row.
	// The order of the result is unspecified.
	GetAll(ctx context.Context) ([]M, error)
}

type NameFinder[M any] interface {
	// FindByName is an exact and case-sensitive lookup on the unique name column.
	FindByName(ctx context.Context, name string) (_ M, found bool, _ error)
}

type Updater[M any] interface {
	// Update replaces the full state of the model that is identified by the model's key.
	// A nil model is rejected with ErrInvalidArgument.
	Update(ctx context.Context, model M) error
}

type Deleter[M any] interface {
	// Delete removes the row which belongs to the model's key.
	// A nil model is rejected with ErrInvalidArgument.
	Delete(ctx context.Context, model M) error
}

type KeyDeleter interface {
	// DeleteByKey removes the row with the given key.
	// What happens with a key that doesn't exist is declared by the adapter's MissingKeyPolicy.
	DeleteByKey(ctx context.Context, key int) error
}

// SingleModelCrud is the simple CRUD recipe.
// It is used for both mutable and immutable models,
// the difference is only in how the model instances are built.
type SingleModelCrud[M any] interface {
	Creator[M]
	KeyFinder[M]
	AllFinder[M]
	NameFinder[M]
	Updater[M]
	Deleter[M]
	KeyDeleter
}

// ImmutableCrud is SingleModelCrud for models
// where every update is represented by a new instance.
type ImmutableCrud[M any] interface {
	SingleModelCrud[M]
}

type NameUpdater interface {
	UpdateName(ctx context.Context, msg *hr.EmployeeClassificationNameUpdater) error
}

type FlagsUpdater interface {
	UpdateFlags(ctx context.Context, msg *hr.EmployeeClassificationFlagsUpdater) error
	// UpdateFlagsByKey is the message free form of UpdateFlags.
	UpdateFlagsByKey(ctx context.Context, key int, isExempt, isEmployee bool) error
}

// PartialUpdate is the recipe where changes are expressed with sparse update messages.
// Fields outside of a message's scope must keep their previous values.
type PartialUpdate[M any] interface {
	Creator[M]
	KeyFinder[M]
	NameUpdater
	FlagsUpdater
	KeyDeleter
}

// Sorting is the recipe for reads with a deterministic order.
// Every result is ordered by the named keys, and equal sort keys are ordered by Entity Key ascending.
type Sorting[M any] interface {
	// InsertBatch persists all models in a single operation.
	InsertBatch(ctx context.Context, models []M) error
	SortByFirstName(ctx context.Context, lastName string) ([]M, error)
	// SortByMiddleNameDescFirstName orders missing middle names last.
	SortByMiddleNameDescFirstName(ctx context.Context, lastName string) ([]M, error)
	SortByLastNameFirstNameMiddleName(ctx context.Context, lastName string) ([]M, error)
	DeleteByLastName(ctx context.Context, lastName string) error
}

// ScalarValue is the recipe for queries that yield a single column.
type ScalarValue interface {
	GetDivisionKey(ctx context.Context, divisionName string) (key int, found bool, _ error)
	GetDivisionName(ctx context.Context, divisionKey int) (name string, found bool, _ error)
	// GetDivisionNames returns the names of every division ordered by name.
	GetDivisionNames(ctx context.Context) ([]string, error)
}

// MissingKeyPolicy declares how an adapter treats the deletion of a key that doesn't exist.
type MissingKeyPolicy int

const (
	// MissingKeyNoOp means that deleting an absent key succeeds without effect.
	MissingKeyNoOp MissingKeyPolicy = iota
	// MissingKeyNotFound means that deleting an absent key fails with ErrNotFound.
	MissingKeyNotFound
)

func (p MissingKeyPolicy) String() string {
	switch p {
	case MissingKeyNotFound:
		return "not-found"
	default:
		return "no-op"
	}
}

// GeneratedKeyThreshold is the lowest key a backing store may generate.
// Keys below it are reserved for seed rows.
const GeneratedKeyThreshold = 1000

// SeedKeys are the fixed rows which every certified backend holds.
var SeedKeys = []int{1, 2, 3}
