package directory

import (
	"strings"

	"github.com/UnknownOlympus/iris/internal/models"
)

// NormalizeSearch trims and lower-cases a raw search term.
func NormalizeSearch(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// SelectSubset derives the working subset of records.
//
// A non-empty search term wins and ignores the location entirely: a record matches
// when its lower-cased first name, lower-cased last name or extension contains the
// term. Otherwise a non-empty location keeps the records with exactly that location.
// With neither, every record is returned. The result is always a new slice.
func SelectSubset(records []models.Employee, location, search string) []models.Employee {
	subset := make([]models.Employee, 0, len(records))

	if term := NormalizeSearch(search); term != "" {
		for _, record := range records {
			if matchesSearch(record, term) {
				subset = append(subset, record)
			}
		}

		return subset
	}

	if location != "" {
		for _, record := range records {
			if record.Location == location {
				subset = append(subset, record)
			}
		}

		return subset
	}

	return append(subset, records...)
}

func matchesSearch(record models.Employee, term string) bool {
	if strings.Contains(strings.ToLower(record.Firstname), term) {
		return true
	}
	if record.Lastname != "" && strings.Contains(strings.ToLower(record.Lastname), term) {
		return true
	}

	return strings.Contains(record.Extension.String(), term)
}
