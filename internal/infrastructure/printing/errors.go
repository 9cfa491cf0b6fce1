package printing

import (
	"fmt"

	"github.com/sushnag22/pdf-generator/internal/domain"
)

// Error codes carried by RenderError.
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// RenderError is a failure while building the HTML or printing it. It matches
// domain.ErrRender with errors.Is.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("printing: [%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("printing: [%s] %s", e.Code, e.Message)
}

func (e *RenderError) Unwrap() []error {
	if e.Cause != nil {
		return []error{domain.ErrRender, e.Cause}
	}
	return []error{domain.ErrRender}
}

// NewRenderError builds a RenderError.
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
