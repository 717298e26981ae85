// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints,
// including structured error envelopes, consistent JSON serialization, and
// helpers for common HTTP patterns. The goal is to guarantee uniform responses
// for both success and failure cases, making the API predictable and
// machine-friendly.
//
// Conventions:
//   - All error responses must return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `ok()` simplifies writing success responses in a consistent shape across
//     handlers.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "conflict",
//	  "message": "idempotency key conflict"
//	}
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
	"github.com/kila-labs/go-prompt-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP status,
// and calls gin.Context.AbortWithStatusJSON to stop further processing.
//
// Server errors (>=500) are logged using the request-scoped logger from
// middleware; the message sent to the client stays generic while the detailed
// cause goes to the log.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// failInternal logs the underlying error with request context and returns a
// generic 500 envelope. Raw persistence detail never crosses the API boundary.
func failInternal(c *gin.Context, code string, err error) {
	lg := middleware.LoggerFrom(c)
	lg.Error().Err(err).Str("code", code).Msg("internal error")
	fail(c, http.StatusInternalServerError, code, "internal server error")
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// PromptResponse is the canonical API representation of a stored prompt.
// IsDuplicate is true only on the submission path, when the idempotency key
// matched an existing record.
type PromptResponse struct {
	ID              uint   `json:"id" example:"42"`
	Prompt          string `json:"prompt" example:"Summarize Q3 revenue drivers"`
	ProjectName     string `json:"project_name" example:"quarterly-reports"`
	UserID          string `json:"user_id" example:"user123"`
	CompanyID       string `json:"company_id" example:"acme"`
	IdempotencyKey  string `json:"idempotency_key" example:"req-7f3a"`
	ExecutionStatus string `json:"execution_status" example:"success"`
	AIResponse      string `json:"ai_response,omitempty"`
	CreatedAt       string `json:"created_at" example:"2025-06-01T12:00:00Z"`
	UpdatedAt       string `json:"updated_at" example:"2025-06-01T12:00:03Z"`
	IsActive        bool   `json:"is_active" example:"true"`
	IsDuplicate     bool   `json:"is_duplicate" example:"false"`
}

// toPromptResponse converts a stored record into the API shape.
func toPromptResponse(p *domain.Prompt, isDuplicate bool) PromptResponse {
	return PromptResponse{
		ID:              p.ID,
		Prompt:          p.Prompt,
		ProjectName:     p.ProjectName,
		UserID:          p.UserID,
		CompanyID:       p.CompanyID,
		IdempotencyKey:  p.IdempotencyKey,
		ExecutionStatus: string(p.ExecutionStatus),
		AIResponse:      p.AIResponse,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.UTC().Format(time.RFC3339),
		IsActive:        p.IsActive,
		IsDuplicate:     isDuplicate,
	}
}
