package hr

// EmployeeSimple is the flat employee model used by the sorting recipe.
type EmployeeSimple struct {
	Key               int
	FirstName         string
	MiddleName        *string
	LastName          string
	Title             *string
	OfficePhone       *string
	CellPhone         *string
	ClassificationKey int
}

func (e *EmployeeSimple) EntityKey() int { return e.Key }

func (e *EmployeeSimple) Names() (first string, middle *string, last string) {
	return e.FirstName, e.MiddleName, e.LastName
}
