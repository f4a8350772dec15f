package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Extension is an internal phone extension. It sorts numerically and is
// searched by its decimal text form.
type Extension int

func (e Extension) String() string {
	return strconv.Itoa(int(e))
}

// UnmarshalJSON accepts both numbers and numeric strings.
func (e *Extension) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to decode extension: %w", err)
		}
		data = []byte(raw)
	}

	value, err := strconv.Atoi(string(bytes.TrimSpace(data)))
	if err != nil {
		return fmt.Errorf("extension %q is not an integer: %w", string(data), err)
	}
	*e = Extension(value)

	return nil
}

// Employee represents one entry of the phone directory.
type Employee struct {
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname,omitempty"`
	Extension Extension `json:"extension"`
	Location  string    `json:"location,omitempty"`
}

// FullName returns "firstname lastname", or the first name alone when there is no last name.
func (e Employee) FullName() string {
	if e.Lastname == "" {
		return e.Firstname
	}

	return e.Firstname + " " + e.Lastname
}

// EmailLocalPart returns "firstname.lastname", or "" when there is no last name.
func (e Employee) EmailLocalPart() string {
	if e.Lastname == "" {
		return ""
	}

	return e.Firstname + "." + e.Lastname
}
