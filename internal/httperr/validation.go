package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationError carries per-field messages and maps to a 422 response
// with the field error bag in the body.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	for _, msgs := range e.Fields {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return "validation failed"
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns the error only when at least one field failed, so callers
// can end a validation pass with a plain return.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func Unprocessable(c *gin.Context, ve *ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": ve.Error(),
		"errors":  ve.Fields,
	})
}
