package response

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes used in the envelope.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeHTTPError       = "HTTP_ERROR"
)

// Envelope is the error body shape shared by every error response.
type Envelope struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

// FieldError is a single field/reason pair inside validation details.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Accepted sends a 202 response.
func Accepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, data)
}

// ValidationError sends a 422 envelope with the given details.
func ValidationError(c *gin.Context, details interface{}) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Envelope{
		Code:    CodeValidationError,
		Message: "Invalid request.",
		Details: details,
	})
}

// BindError sends a 422 envelope for a request-shape binding failure,
// expanding validator errors into per-field details.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:  snakeCase(fe.Field()),
				Reason: "failed validation: " + fe.Tag(),
			})
		}
		ValidationError(c, details)
		return
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Envelope{
		Code:    CodeValidationError,
		Message: "Invalid request.",
		Details: err.Error(),
	})
}

// NotFound sends the generic 404 envelope.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{
		Code:    CodeNotFound,
		Message: "Not found.",
		Details: nil,
	})
}

// Unauthorized sends a 401 envelope.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Code:    CodeHTTPError,
		Message: "Not authenticated.",
		Details: nil,
	})
}

// HTTPError sends an arbitrary-status envelope for uncaught HTTP-level errors.
func HTTPError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Code:    CodeHTTPError,
		Message: message,
		Details: nil,
	})
}

// InternalError sends a 500 envelope.
func InternalError(c *gin.Context, err error) {
	HTTPError(c, http.StatusInternalServerError, err.Error())
}

// MethodNotAllowed sends a 405 envelope.
func MethodNotAllowed(c *gin.Context) {
	HTTPError(c, http.StatusMethodNotAllowed, "Method not allowed.")
}

// snakeCase converts a Go struct field name to its wire name.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(name[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
