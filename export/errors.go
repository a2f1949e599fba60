package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes export failures for the UI. Timeout is deliberately
// distinct from RenderFailure: a timeout suggests a smaller deck, a render
// failure suggests fixing content.
type ErrorKind string

const (
	KindInvalidOutline ErrorKind = "invalid_outline"
	KindRenderFailure  ErrorKind = "render_failure"
	KindTimeout        ErrorKind = "timeout"
	KindCancelled      ErrorKind = "cancelled"
)

// ExportError is the typed result of a failed export. Nothing in the export
// path panics; renderer exceptions arrive here wrapped, never retried.
type ExportError struct {
	Kind ErrorKind
	// SlideIndices lists the offending slides for KindInvalidOutline.
	SlideIndices []int
	Message      string
	Err          error
}

func (e *ExportError) Error() string {
	switch e.Kind {
	case KindInvalidOutline:
		if len(e.SlideIndices) > 0 {
			idx := make([]string, len(e.SlideIndices))
			for i, v := range e.SlideIndices {
				idx[i] = fmt.Sprintf("%d", v)
			}
			return fmt.Sprintf("invalid outline: %s (slides %s)", e.Message, strings.Join(idx, ", "))
		}
		return fmt.Sprintf("invalid outline: %s", e.Message)
	case KindTimeout:
		return fmt.Sprintf("export timed out: %s", e.Message)
	case KindCancelled:
		return "export cancelled"
	default:
		return fmt.Sprintf("deck rendering failed: %s", e.Message)
	}
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// AsExportError extracts an *ExportError from an error chain.
func AsExportError(err error) (*ExportError, bool) {
	var ee *ExportError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
