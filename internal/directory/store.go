package directory

import (
	"slices"

	"github.com/UnknownOlympus/iris/internal/models"
)

// Store holds the loaded employee list. It is never mutated after construction,
// so it can be shared by any number of readers.
type Store struct {
	employees []models.Employee
}

// NewStore copies employees into a new read-only store.
func NewStore(employees []models.Employee) *Store {
	return &Store{employees: slices.Clone(employees)}
}

// All returns a copy of every record in load order.
func (s *Store) All() []models.Employee {
	if s == nil {
		return nil
	}

	return slices.Clone(s.employees)
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.employees)
}

// Locations returns the distinct non-empty locations referenced by the records, sorted.
func (s *Store) Locations() []string {
	if s == nil {
		return nil
	}

	seen := make(map[string]struct{})
	locations := make([]string, 0)
	for _, employee := range s.employees {
		if employee.Location == "" {
			continue
		}
		if _, ok := seen[employee.Location]; ok {
			continue
		}
		seen[employee.Location] = struct{}{}
		locations = append(locations, employee.Location)
	}
	slices.Sort(locations)

	return locations
}
