// Package respond writes the service's uniform JSON bodies. Handlers and
// middleware share it so every error leaves the process in the same shape:
// {"error":{"status":...,"message":...,"details":...}}.
package respond

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/wasa-portal/auth-service/internal/apperrors"
)

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// Error maps any error to the uniform error body and writes it. Unknown
// errors become a 500 with details suppressed.
func Error(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.Status, errorEnvelope{Error: errorBody{
		Status:  appErr.Status,
		Message: appErr.Message,
		Details: normalizeDetails(appErr.Details),
	}})
}

// AbortError writes the uniform error body and stops the handler chain.
func AbortError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.AbortWithStatusJSON(appErr.Status, errorEnvelope{Error: errorBody{
		Status:  appErr.Status,
		Message: appErr.Message,
		Details: normalizeDetails(appErr.Details),
	}})
}

// normalizeDetails renders error-typed details as text so the body stays
// JSON-serializable, and keeps absent details as an explicit null.
// ozzo's validation.Errors marshals itself as a field->message map and is
// passed through untouched.
func normalizeDetails(details any) any {
	if details == nil {
		return nil
	}
	if _, ok := details.(json.Marshaler); ok {
		return details
	}
	if err, ok := details.(error); ok {
		return err.Error()
	}
	return details
}
