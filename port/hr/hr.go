// Package hr holds the models of the HR schema that the cookbook recipes operate on,
// and the capability interfaces a model must satisfy to take part in a repository contract.
package hr

// Keyed is a model that exposes its Entity Key.
// The Entity Key is always assigned by the backing store, and zero means "not yet persisted".
type Keyed interface {
	EntityKey() int
}

// Named is a model with a unique display name.
type Named interface {
	EntityName() string
}

type Flagged interface {
	Flags() (isExempt, isEmployee bool)
}

// Classification is the capability set
// which the classification based repository contracts depend on.
type Classification interface {
	Keyed
	Named
	Flagged
}

// Person is the capability set of the sortable employee contract.
type Person interface {
	Keyed
	Names() (first string, middle *string, last string)
}

type Division struct {
	Key  int
	Name string
}

type Department struct {
	Key         int
	Name        string
	DivisionKey int
}
