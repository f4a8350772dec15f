package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/UnknownOlympus/iris/internal/models"
)

const employeeTable = "employees"

// ListEmployees reads the whole employee table. Missing last names and
// locations come back as empty strings.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("list_employees").Observe(duration)
	}()

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("firstname", "COALESCE(lastname, '')", "extension", "COALESCE(location, '')").
		From(employeeTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		var extension int

		if err = rows.Scan(&employee.Firstname, &employee.Lastname, &extension, &employee.Location); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employee.Extension = models.Extension(extension)

		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
