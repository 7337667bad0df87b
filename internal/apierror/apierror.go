// Package apierror defines the three failure kinds surfaced by the services
// and renders them as JSON error bodies.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation")
)

const timestampLayout = "2006-01-02 15:04:05"

// Error carries a caller-visible message for one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Response is the error body returned by both services.
type Response struct {
	Status    string   `json:"status"`
	Reason    string   `json:"reason"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body and aborts the gin chain.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	status := StatusOf(err)
	body := Response{
		Status:    strings.ReplaceAll(strings.ToUpper(http.StatusText(status)), " ", "_"),
		Message:   err.Error(),
		Timestamp: time.Now().Format(timestampLayout),
	}

	switch status {
	case http.StatusNotFound:
		body.Reason = "The required object was not found."
	case http.StatusConflict:
		body.Reason = "For the requested operation the conditions are not met."
	case http.StatusBadRequest:
		body.Reason = "Incorrectly made request."
	default:
		body.Reason = "Unexpected error."
		body.Message = "internal server error"
		if log != nil {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
	}

	c.AbortWithStatusJSON(status, body)
}

// RespondBinding renders a gin binding failure as a 400 with field messages.
func RespondBinding(c *gin.Context, err error) {
	body := Response{
		Status:    "BAD_REQUEST",
		Reason:    "Incorrectly made request.",
		Message:   err.Error(),
		Timestamp: time.Now().Format(timestampLayout),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			body.Errors = append(body.Errors, fieldMessage(fe))
		}
		body.Message = "Field validation failed"
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field: %s. Error: must not be blank. Value: %v", field, fe.Value())
	case "min", "max":
		return fmt.Sprintf("Field: %s. Error: must satisfy %s=%s. Value: %v", field, fe.Tag(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("Field: %s. Error: must be one of [%s]. Value: %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("Field: %s. Error: failed on %s. Value: %v", field, fe.Tag(), fe.Value())
	}
}
