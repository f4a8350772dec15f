package repository

import (
	"context"

	"github.com/UnknownOlympus/iris/internal/metrics"
	"github.com/UnknownOlympus/iris/internal/models"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for reading employee data from the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

func NewEmployeeRepository(db Database, appMetrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: appMetrics}
}
