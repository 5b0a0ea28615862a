package export

import (
	"errors"
	"fmt"
)

// ErrForbiddenSlug is returned when an item carries the literal slug "None".
// It aborts the whole run.
var ErrForbiddenSlug = errors.New(`forbidden slug "None"`)

// MalformedExportError reports a document that is not a readable export.
type MalformedExportError struct {
	Path string
	Err  error
}

func (e *MalformedExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed export: %v", e.Err)
	}
	return fmt.Sprintf("malformed export %s: %v", e.Path, e.Err)
}

func (e *MalformedExportError) Unwrap() error {
	return e.Err
}
