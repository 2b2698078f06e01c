package validators

import (
	"strings"

	"github.com/baliestri/calliope/models"
)

// ValidationErrors is the collection of field-level failures produced by a
// validator run. Validation is not fail-fast: every violated rule
// contributes an entry. The zero-length collection is never returned as an
// error; validators return nil instead.
type ValidationErrors []models.FieldError

// Error implements the error interface by joining all field messages.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the collected failures for serialization at the HTTP
// boundary.
func (v ValidationErrors) Fields() []models.FieldError {
	return v
}
