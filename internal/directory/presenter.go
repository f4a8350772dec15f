package directory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/UnknownOlympus/iris/internal/models"
)

const headingPrefix = "Extensions"

// Split sorts a copy of subset by extension (stable) and cuts it at ceil(n/2).
// The first half is never shorter than the second.
func Split(subset []models.Employee) ([]models.Employee, []models.Employee) {
	sorted := slices.Clone(subset)
	slices.SortStableFunc(sorted, func(a, b models.Employee) int {
		return cmp.Compare(a.Extension, b.Extension)
	})

	mid := (len(sorted) + 1) / 2

	return sorted[:mid:mid], sorted[mid:]
}

// Present turns a subset into the two rendered tables.
// Email addresses are built as firstname.lastname@emailDomain.
func Present(subset []models.Employee, emailDomain string) (models.Table, models.Table) {
	left, right := Split(subset)

	return buildTable(left, emailDomain), buildTable(right, emailDomain)
}

func buildTable(partition []models.Employee, emailDomain string) models.Table {
	rows := make([]models.Row, 0, len(partition))
	for _, employee := range partition {
		rows = append(rows, buildRow(employee, emailDomain))
	}

	return models.Table{Heading: Heading(partition), Rows: rows}
}

func buildRow(employee models.Employee, emailDomain string) models.Row {
	row := models.Row{
		Name:       employee.FullName(),
		Extension:  employee.Extension,
		CallTarget: "tel:" + employee.Extension.String(),
	}

	if local := employee.EmailLocalPart(); local != "" {
		row.Email = local
		if emailDomain != "" {
			row.Email = local + "@" + emailDomain
		}
		row.EmailTarget = "mailto:" + row.Email
	}

	return row
}

// Heading describes the range of extensions present in a partition.
// The partition does not have to be sorted.
func Heading(partition []models.Employee) string {
	if len(partition) == 0 {
		return headingPrefix
	}

	low := slices.MinFunc(partition, byExtension).Extension
	high := slices.MaxFunc(partition, byExtension).Extension

	if low == high {
		return fmt.Sprintf("Extension %s", low)
	}

	return fmt.Sprintf("%s %s - %s", headingPrefix, low, high)
}

func byExtension(a, b models.Employee) int {
	return cmp.Compare(a.Extension, b.Extension)
}
