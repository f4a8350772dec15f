package employees

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/UnknownOlympus/iris/internal/client"
	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/UnknownOlympus/iris/internal/parser"
	"github.com/UnknownOlympus/iris/internal/repository"
)

// Source delivers the employee list.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string
	Load(ctx context.Context) ([]models.Employee, error)
	// Ping reports whether the source is reachable.
	Ping(ctx context.Context) error
}

// FileSource reads a JSON document from the local filesystem.
type FileSource struct {
	path   string
	parser parser.EmployeeParserIface
}

func NewFileSource(path string, employeeParser parser.EmployeeParserIface) *FileSource {
	return &FileSource{path: path, parser: employeeParser}
}

func (fs *FileSource) Name() string { return "file" }

func (fs *FileSource) Load(_ context.Context) ([]models.Employee, error) {
	file, err := os.Open(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open employee file: %w", err)
	}
	defer file.Close()

	employees, err := fs.parser.ParseEmployees(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse employee file %s: %w", fs.path, err)
	}

	return employees, nil
}

func (fs *FileSource) Ping(_ context.Context) error {
	if _, err := os.Stat(fs.path); err != nil {
		return fmt.Errorf("employee file is not accessible: %w", err)
	}

	return nil
}

// HTTPSource fetches the JSON document over HTTP.
type HTTPSource struct {
	client  *http.Client
	destURL string
	parser  parser.EmployeeParserIface
}

func NewHTTPSource(httpClient *http.Client, destURL string, employeeParser parser.EmployeeParserIface) *HTTPSource {
	return &HTTPSource{client: httpClient, destURL: destURL, parser: employeeParser}
}

func (hs *HTTPSource) Name() string { return "http" }

func (hs *HTTPSource) Load(ctx context.Context) ([]models.Employee, error) {
	body, err := client.FetchDocument(ctx, hs.client, hs.destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee document: %w", err)
	}
	defer body.Close()

	employees, err := hs.parser.ParseEmployees(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse employee document from %s: %w", hs.destURL, err)
	}

	return employees, nil
}

func (hs *HTTPSource) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, hs.destURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create new request %s: %w", hs.destURL, err)
	}
	req.Header.Set("User-Agent", client.UserAgent)

	resp, err := hs.client.Do(req)
	if err != nil {
		return fmt.Errorf("employee document host unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w, status code: %d", client.ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

// DBSource reads the employees table.
type DBSource struct {
	repo repository.EmployeeRepoIface
	db   repository.Database
}

func NewDBSource(db repository.Database, repo repository.EmployeeRepoIface) *DBSource {
	return &DBSource{repo: repo, db: db}
}

func (ds *DBSource) Name() string { return "postgres" }

func (ds *DBSource) Load(ctx context.Context) ([]models.Employee, error) {
	employees, err := ds.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read employees from database: %w", err)
	}

	return employees, nil
}

func (ds *DBSource) Ping(ctx context.Context) error {
	if err := ds.db.Ping(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}

	return nil
}
