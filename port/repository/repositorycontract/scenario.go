package repositorycontract

import (
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
)

// Scenario abstracts how a classification fixture is built and changed,
// so the same suite can certify models with different construction disciplines.
type Scenario[M any] interface {
	// CreateWithValues builds a fresh, not yet persisted model.
	CreateWithValues(name string, isExempt, isEmployee bool) M
	// UpdateWithValues returns a model that carries the original's key and the new values.
	// Depending on the Discipline, the original is either changed in place or left untouched.
	UpdateWithValues(original M, name string, isExempt, isEmployee bool) M
	Discipline() Discipline
}

type Discipline int

const (
	DisciplineMutable Discipline = iota
	DisciplineImmutable
)

func (d Discipline) String() string {
	if d == DisciplineImmutable {
		return "immutable"
	}
	return "mutable"
}

// MutableScenario populates hr.EmployeeClassification field by field,
// and updates mutate the original instance.
type MutableScenario struct{}

func (MutableScenario) CreateWithValues(name string, isExempt, isEmployee bool) *hr.EmployeeClassification {
	var ec hr.EmployeeClassification
	ec.Name = name
	ec.IsExempt = isExempt
	ec.IsEmployee = isEmployee
	return &ec
}

func (MutableScenario) UpdateWithValues(original *hr.EmployeeClassification, name string, isExempt, isEmployee bool) *hr.EmployeeClassification {
	if original == nil {
		panic(repository.ErrNilModel("UpdateWithValues"))
	}
	original.Name = name
	original.IsExempt = isExempt
	original.IsEmployee = isEmployee
	return original
}

func (MutableScenario) Discipline() Discipline { return DisciplineMutable }

// ImmutableScenario constructs hr.ReadOnlyEmployeeClassification values,
// and an update copy-constructs a new instance with the original key.
type ImmutableScenario struct{}

func (ImmutableScenario) CreateWithValues(name string, isExempt, isEmployee bool) *hr.ReadOnlyEmployeeClassification {
	return hr.NewReadOnlyEmployeeClassification(0, name, isExempt, isEmployee)
}

func (ImmutableScenario) UpdateWithValues(original *hr.ReadOnlyEmployeeClassification, name string, isExempt, isEmployee bool) *hr.ReadOnlyEmployeeClassification {
	if original == nil {
		panic(repository.ErrNilModel("UpdateWithValues"))
	}
	return hr.NewReadOnlyEmployeeClassification(original.Key(), name, isExempt, isEmployee)
}

func (ImmutableScenario) Discipline() Discipline { return DisciplineImmutable }

// ScenarioFuncs is a function field based Scenario for adapter specific model types.
type ScenarioFuncs[M any] struct {
	Create func(name string, isExempt, isEmployee bool) M
	Update func(original M, name string, isExempt, isEmployee bool) M
	Kind   Discipline
}

func (s ScenarioFuncs[M]) CreateWithValues(name string, isExempt, isEmployee bool) M {
	return s.Create(name, isExempt, isEmployee)
}

func (s ScenarioFuncs[M]) UpdateWithValues(original M, name string, isExempt, isEmployee bool) M {
	return s.Update(original, name, isExempt, isEmployee)
}

func (s ScenarioFuncs[M]) Discipline() Discipline { return s.Kind }

// PersonScenario builds the fixtures of the Sorting suite.
type PersonScenario[M any] interface {
	CreatePerson(first string, middle *string, last string, classificationKey int) M
}

type EmployeeSimpleScenario struct{}

func (EmployeeSimpleScenario) CreatePerson(first string, middle *string, last string, classificationKey int) *hr.EmployeeSimple {
	return &hr.EmployeeSimple{
		FirstName:         first,
		MiddleName:        middle,
		LastName:          last,
		ClassificationKey: classificationKey,
	}
}
