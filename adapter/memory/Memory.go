// Package memory is the in-process recipe of the cookbook.
// It is the reference adapter that every contract suite runs against without external dependencies.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/pkg/errorkit"
)

// ErrUniqueName mirrors the unique name index of the relational schema.
const ErrUniqueName errorkit.Error = "unique constraint violation on name"

// Memory holds the HR tables in memory.
// Its zero value is not usable, use NewMemory.
type Memory struct {
	m               sync.RWMutex
	serial          int
	divisions       map[int]hr.Division
	departments     map[int]hr.Department
	classifications map[int]hr.EmployeeClassification
	employees       map[int]hr.EmployeeSimple
}

// NewMemory returns a Memory with the seed rows,
// and with key generation positioned at the generated key threshold.
func NewMemory() *Memory {
	m := &Memory{
		serial:          repository.GeneratedKeyThreshold - 1,
		divisions:       make(map[int]hr.Division),
		departments:     make(map[int]hr.Department),
		classifications: make(map[int]hr.EmployeeClassification),
		employees:       make(map[int]hr.EmployeeSimple),
	}
	for _, d := range hr.SeedDivisions {
		m.divisions[d.Key] = d
	}
	for _, d := range hr.SeedDepartments {
		m.departments[d.Key] = d
	}
	for _, ec := range hr.SeedClassifications {
		m.classifications[ec.Key] = ec
	}
	return m
}

// nextKey must be called while holding the write lock.
func (m *Memory) nextKey() int {
	m.serial++
	return m.serial
}

func (m *Memory) insertClassification(ctx context.Context, ec hr.EmployeeClassification) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.lookupName(ec.Name); ok {
		return 0, ErrUniqueName.F("%q", ec.Name)
	}
	ec.Key = m.nextKey()
	m.classifications[ec.Key] = ec
	return ec.Key, nil
}

func (m *Memory) getClassification(ctx context.Context, key int) (hr.EmployeeClassification, bool, error) {
	if err := ctx.Err(); err != nil {
		return hr.EmployeeClassification{}, false, err
	}
	m.m.RLock()
	defer m.m.RUnlock()
	ec, ok := m.classifications[key]
	return ec, ok, nil
}

func (m *Memory) findClassification(ctx context.Context, name string) (hr.EmployeeClassification, bool, error) {
	if err := ctx.Err(); err != nil {
		return hr.EmployeeClassification{}, false, err
	}
	m.m.RLock()
	defer m.m.RUnlock()
	ec, ok := m.lookupName(name)
	return ec, ok, nil
}

func (m *Memory) lookupName(name string) (hr.EmployeeClassification, bool) {
	for _, ec := range m.classifications {
		if ec.Name == name {
			return ec, true
		}
	}
	return hr.EmployeeClassification{}, false
}

func (m *Memory) allClassifications(ctx context.Context) ([]hr.EmployeeClassification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.m.RLock()
	defer m.m.RUnlock()
	return slices.Collect(maps.Values(m.classifications)), nil
}

// patchClassification applies the change to the stored row.
// A missing key is a no-op, the same way as an UPDATE without matching rows.
func (m *Memory) patchClassification(ctx context.Context, key int, patch func(*hr.EmployeeClassification)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.m.Lock()
	defer m.m.Unlock()
	ec, ok := m.classifications[key]
	if !ok {
		return nil
	}
	patch(&ec)
	if oth, ok := m.lookupName(ec.Name); ok && oth.Key != key {
		return ErrUniqueName.F("%q", ec.Name)
	}
	m.classifications[key] = ec
	return nil
}

func (m *Memory) deleteClassification(ctx context.Context, key int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.m.Lock()
	defer m.m.Unlock()
	_, ok := m.classifications[key]
	delete(m.classifications, key)
	return ok, nil
}
