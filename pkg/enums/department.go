package enums

import "fmt"

// Department represents the store departments eligible for catalog views.
// The backing column holds the legacy Spanish labels; rows carrying any
// other historical value are excluded from customer-facing queries.
type Department string

const (
	DepartmentWomen  Department = "DAMAS"
	DepartmentMen    Department = "HOMBRES"
	DepartmentBoys   Department = "NIÑOS"
	DepartmentGirls  Department = "NIÑAS"
	DepartmentUnisex Department = "UNISEX"
)

var validDepartments = []Department{
	DepartmentWomen,
	DepartmentMen,
	DepartmentBoys,
	DepartmentGirls,
	DepartmentUnisex,
}

// String implements fmt.Stringer.
func (d Department) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Department.
func (d Department) IsValid() bool {
	for _, candidate := range validDepartments {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDepartment converts raw input into a Department.
func ParseDepartment(value string) (Department, error) {
	for _, candidate := range validDepartments {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid department %q", value)
}

// ValidDepartmentValues returns the raw labels for SQL IN clauses.
func ValidDepartmentValues() []string {
	values := make([]string, 0, len(validDepartments))
	for _, d := range validDepartments {
		values = append(values, string(d))
	}
	return values
}
