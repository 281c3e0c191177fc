package hr

import "cmp"

// The comparators below define the Sorting recipe orders for stores that sort in process.
// Ties are left to the caller, which breaks them by the employee key.

func CompareFirstName(a, b *EmployeeSimple) int {
	return cmp.Compare(a.FirstName, b.FirstName)
}

// CompareMiddleNameDescFirstName orders by middle name descending with nil middle names last, then by first name.
func CompareMiddleNameDescFirstName(a, b *EmployeeSimple) int {
	// swapped arguments give the descending order and move nil to the end
	return cmp.Or(
		compareNullable(b.MiddleName, a.MiddleName),
		cmp.Compare(a.FirstName, b.FirstName),
	)
}

// CompareLastNameFirstNameMiddleName orders by last, first and middle name, with nil middle names first.
func CompareLastNameFirstNameMiddleName(a, b *EmployeeSimple) int {
	return cmp.Or(
		cmp.Compare(a.LastName, b.LastName),
		cmp.Compare(a.FirstName, b.FirstName),
		compareNullable(a.MiddleName, b.MiddleName),
	)
}

// compareNullable sorts nil before any value.
func compareNullable(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}
