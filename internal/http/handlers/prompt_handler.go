// Prompt HTTP handlers.
//
// This file exposes REST endpoints for prompt resources:
//   - POST   /prompts                      (idempotent submit)
//   - GET    /prompts/{id}                 (single read)
//   - GET    /prompts/company/{company_id} (list, paginated, ETag support)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
	"github.com/kila-labs/go-prompt-backend/internal/http/middleware"
	"github.com/kila-labs/go-prompt-backend/internal/services"
	"github.com/kila-labs/go-prompt-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// PromptService defines the prompt lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PromptService interface {
	// Submit runs the idempotent submission flow; the bool is the duplicate
	// marker.
	Submit(ctx context.Context, in services.SubmitInput) (*domain.Prompt, bool, error)
	// Get returns a prompt by its generated identifier.
	Get(ctx context.Context, id uint) (*domain.Prompt, error)
	// ListByCompany returns a page of a company's prompts and the total count.
	ListByCompany(ctx context.Context, companyID string, page, pageSize int) ([]domain.Prompt, int64, error)
	// CompanyStats returns count and latest update time for ETag generation.
	CompanyStats(ctx context.Context, companyID string) (int64, *time.Time, error)
}

// AlternativesService defines alternative-prompt generation.
type AlternativesService interface {
	// Suggest returns model-generated rephrasings of originPrompt.
	Suggest(ctx context.Context, userID, originPrompt string) (*services.AlternativesResult, error)
}

// ReferenceService defines read-only company/user lookups.
type ReferenceService interface {
	GetCompany(ctx context.Context, id uint) (*domain.Company, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for prompts, alternatives, and reference
// reads. It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	promptSvc PromptService
	altSvc    AlternativesService
	refSvc    ReferenceService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(promptSvc PromptService, altSvc AlternativesService, refSvc ReferenceService) *Handlers {
	return &Handlers{promptSvc: promptSvc, altSvc: altSvc, refSvc: refSvc}
}

//
// DTOs
//

// SubmitPromptRequest is the JSON payload for submitting a prompt.
type SubmitPromptRequest struct {
	// Prompt is the text to capture (1–10000 chars).
	Prompt string `json:"prompt" binding:"required" example:"Summarize Q3 revenue drivers"`
	// ProjectName groups prompts within a company (1–100 chars).
	ProjectName string `json:"project_name" binding:"required" example:"quarterly-reports"`
	// UserID identifies the submitting user (1–100 chars).
	UserID string `json:"user_id" binding:"required" example:"user123"`
	// CompanyID identifies the owning company (1–100 chars).
	CompanyID string `json:"company_id" binding:"required" example:"acme"`
	// IdempotencyKey deduplicates retried submissions (1–100 chars, globally unique).
	IdempotencyKey string `json:"idempotency_key" binding:"required" example:"req-7f3a"`
}

// AlternativesRequest is the JSON payload for the alternatives endpoint.
type AlternativesRequest struct {
	UserID       string `json:"user_id" binding:"required" example:"user123"`
	OriginPrompt string `json:"origin_prompt" binding:"required" example:"best laptops"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListPromptsResponse wraps a page of prompts and pagination information.
type ListPromptsResponse struct {
	Prompts    []PromptResponse `json:"prompts"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// pathID parses a numeric path parameter, failing the request with 400 when
// it is not a positive integer.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

//
// Handlers
//

// SubmitPrompt godoc
// @ID          submitPrompt
// @Summary     Submit a prompt (idempotent)
// @Description Persists the prompt and synchronously attaches the model outcome.
// @Description A repeated idempotency_key returns the original record with is_duplicate=true
// @Description and triggers no side effects. Model failure is absorbed into a failed
// @Description execution_status; it never fails the request.
// @Tags        Prompts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SubmitPromptRequest  true  "Prompt submission payload"
//
// @Success     201  {object}  handlers.PromptResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     409  {object}  handlers.ErrorResponse  "Idempotency race lost"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /prompts [post]
func (h *Handlers) SubmitPrompt(c *gin.Context) {
	var req SubmitPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	rec, dup, err := h.promptSvc.Submit(c.Request.Context(), services.SubmitInput{
		Prompt:         req.Prompt,
		ProjectName:    req.ProjectName,
		UserID:         req.UserID,
		CompanyID:      req.CompanyID,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			middleware.CountSubmission("rejected")
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "all fields are required; prompt <= 10000 chars, identifiers <= 100 chars")
		case errors.Is(err, services.ErrConflict):
			middleware.CountSubmission("conflict")
			fail(c, http.StatusConflict, ErrCodeConflict, "a submission with this idempotency key is already in progress")
		default:
			middleware.CountSubmission("error")
			failInternal(c, ErrCodeSubmitFailed, err)
		}
		return
	}

	if dup {
		middleware.CountSubmission("duplicate")
	} else {
		middleware.CountSubmission("created")
	}
	ok(c, http.StatusCreated, toPromptResponse(rec, dup))
}

// GetPrompt godoc
// @ID          getPrompt
// @Summary     Fetch a single prompt
// @Tags        Prompts
// @Produce     json
//
// @Param       id  path  int  true  "Prompt ID"  minimum(1)
//
// @Success     200  {object}  handlers.PromptResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Non-numeric ID"
// @Failure     404  {object}  handlers.ErrorResponse  "Prompt not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /prompts/{id} [get]
func (h *Handlers) GetPrompt(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}

	rec, err := h.promptSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "prompt not found")
			return
		}
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, toPromptResponse(rec, false))
}

// ListCompanyPrompts godoc
// @ID          listCompanyPrompts
// @Summary     List a company's prompts (paginated)
// @Description Returns a page of the company's prompts, newest first. Supports weak ETag
// @Description via If-None-Match and may return 304.
// @Tags        Prompts
// @Produce     json
//
// @Param       company_id     path    string  true  "Company ID"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListPromptsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     404  {object} handlers.ErrorResponse "No prompts for this company"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /prompts/company/{company_id} [get]
func (h *Handlers) ListCompanyPrompts(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := strings.TrimSpace(c.Param("company_id"))
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, maxTS, err := h.promptSvc.CompanyStats(ctx, companyID); err == nil && count > 0 {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"prompts:%s:%d:%d"`, companyID, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.promptSvc.ListByCompany(ctx, companyID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no prompts recorded for this company")
			return
		}
		failInternal(c, ErrCodeListFailed, err)
		return
	}

	out := make([]PromptResponse, 0, len(items))
	for i := range items {
		out = append(out, toPromptResponse(&items[i], false))
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListPromptsResponse{
		Prompts: out,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
