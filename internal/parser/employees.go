package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/UnknownOlympus/iris/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	ErrMalformedDocument = errors.New("malformed employee document")
	ErrInvalidEmployee   = errors.New("invalid employee record")
)

type EmployeeParser struct {
	validate *validator.Validate
}

type EmployeeParserIface interface {
	ParseEmployees(in io.Reader) ([]models.Employee, error)
}

func NewEmployeeParser() EmployeeParserIface {
	return &EmployeeParser{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// employeeRecord is the wire form of an employee. Extension is a pointer so that
// a record without the key fails validation instead of becoming extension 0.
type employeeRecord struct {
	Firstname string            `json:"firstname" validate:"required"`
	Lastname  string            `json:"lastname"`
	Extension *models.Extension `json:"extension" validate:"required,gte=0"`
	Location  string            `json:"location"`
}

// ParseEmployees decodes a JSON array of employee records and validates every record.
// Order in the document carries no meaning and is preserved as is.
func (ep *EmployeeParser) ParseEmployees(in io.Reader) ([]models.Employee, error) {
	var records []employeeRecord

	decoder := json.NewDecoder(in)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after employee list", ErrMalformedDocument)
	}

	employees := make([]models.Employee, 0, len(records))
	for index, record := range records {
		if err := ep.validate.Struct(record); err != nil {
			return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidEmployee, index, err)
		}

		employees = append(employees, models.Employee{
			Firstname: record.Firstname,
			Lastname:  record.Lastname,
			Extension: *record.Extension,
			Location:  record.Location,
		})
	}

	return employees, nil
}
