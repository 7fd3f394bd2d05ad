package sheet

import "fmt"

// FieldError reports malformed cell content in a named field. It is fatal
// to reading that field but is caught per row and converted into a row
// error mark; it never aborts a pass.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// ReadOnlyError reports a rejected edit on a read-only field. The prior
// value has been restored; the edit counts as a user notification, not as
// a pass error.
type ReadOnlyError struct {
	Field string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("field %s is read-only", e.Field)
}
