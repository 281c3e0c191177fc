package hr

// UpdateMessage is a sparse, field scoped change request for a single entity.
// Fields outside of the message are left untouched by the repository.
type UpdateMessage interface {
	Keyed
	// Fields list the column names which the message changes.
	Fields() []string
}

// EmployeeClassificationNameUpdater renames a classification.
type EmployeeClassificationNameUpdater struct {
	Key  int
	Name string
}

func (u *EmployeeClassificationNameUpdater) EntityKey() int {
	return u.Key
}

func (u *EmployeeClassificationNameUpdater) Fields() []string {
	return []string{"EmployeeClassificationName"}
}

// Apply patches the named fields of the given classification.
func (u *EmployeeClassificationNameUpdater) Apply(ec *EmployeeClassification) {
	ec.Name = u.Name
}

// EmployeeClassificationFlagsUpdater changes the co-updated flag pair of a classification.
type EmployeeClassificationFlagsUpdater struct {
	Key        int
	IsExempt   bool
	IsEmployee bool
}

func (u *EmployeeClassificationFlagsUpdater) EntityKey() int {
	return u.Key
}

func (u *EmployeeClassificationFlagsUpdater) Fields() []string {
	return []string{"IsExempt", "IsEmployee"}
}

func (u *EmployeeClassificationFlagsUpdater) Apply(ec *EmployeeClassification) {
	ec.IsExempt = u.IsExempt
	ec.IsEmployee = u.IsEmployee
}
