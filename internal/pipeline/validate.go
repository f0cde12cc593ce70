package pipeline

import (
	"errors"
	"fmt"

	"kosis-cpi/internal/model"
)

// ErrMissingField is matched by every MissingFieldError
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports the first required column absent from a record
type MissingFieldError struct {
	Row   int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d: %v: %s", e.Row, ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// validateRecord checks that every required field is present.
// A JSON null counts as present.
func validateRecord(row int, rec model.GenericRecord, required []string) error {
	for _, field := range required {
		if _, ok := rec[field]; !ok {
			return &MissingFieldError{Row: row, Field: field}
		}
	}
	return nil
}
