package hr

// EmployeeClassification is the mutable classification model.
// It is populated field by field and updates mutate it in place.
type EmployeeClassification struct {
	Key        int
	Name       string
	IsExempt   bool
	IsEmployee bool
}

func (ec *EmployeeClassification) EntityKey() int {
	return ec.Key
}

func (ec *EmployeeClassification) EntityName() string {
	return ec.Name
}

func (ec *EmployeeClassification) Flags() (isExempt, isEmployee bool) {
	return ec.IsExempt, ec.IsEmployee
}

// ReadOnlyEmployeeClassification is the immutable classification model.
// Every value is given at construction,
// and an "update" means constructing a new instance that keeps the original key.
type ReadOnlyEmployeeClassification struct {
	key        int
	name       string
	isExempt   bool
	isEmployee bool
}

func NewReadOnlyEmployeeClassification(key int, name string, isExempt, isEmployee bool) *ReadOnlyEmployeeClassification {
	return &ReadOnlyEmployeeClassification{
		key:        key,
		name:       name,
		isExempt:   isExempt,
		isEmployee: isEmployee,
	}
}

func (ec *ReadOnlyEmployeeClassification) Key() int {
	return ec.key
}

func (ec *ReadOnlyEmployeeClassification) Name() string {
	return ec.name
}

func (ec *ReadOnlyEmployeeClassification) IsExempt() bool {
	return ec.isExempt
}

func (ec *ReadOnlyEmployeeClassification) IsEmployee() bool {
	return ec.isEmployee
}

func (ec *ReadOnlyEmployeeClassification) EntityKey() int {
	return ec.key
}

func (ec *ReadOnlyEmployeeClassification) EntityName() string {
	return ec.name
}

func (ec *ReadOnlyEmployeeClassification) Flags() (isExempt, isEmployee bool) {
	return ec.isExempt, ec.isEmployee
}

// WithKey returns a copy that carries the given key.
// The receiver is left untouched.
func (ec *ReadOnlyEmployeeClassification) WithKey(key int) *ReadOnlyEmployeeClassification {
	return NewReadOnlyEmployeeClassification(key, ec.name, ec.isExempt, ec.isEmployee)
}
