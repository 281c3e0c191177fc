package hr

// The seed rows every certified store holds.
// Their keys are below the generated key range.
var (
	SeedDivisions = []Division{
		{Key: 1, Name: "Headquarters"},
		{Key: 2, Name: "Operations"},
		{Key: 3, Name: "Research"},
	}
	SeedDepartments = []Department{
		{Key: 1, Name: "Accounting", DivisionKey: 1},
		{Key: 2, Name: "Logistics", DivisionKey: 2},
		{Key: 3, Name: "Laboratory", DivisionKey: 3},
	}
	SeedClassifications = []EmployeeClassification{
		{Key: 1, Name: "Full Time Salary", IsExempt: true, IsEmployee: true},
		{Key: 2, Name: "Full Time Hourly", IsExempt: false, IsEmployee: true},
		{Key: 3, Name: "Contractor", IsExempt: false, IsEmployee: false},
	}
)
