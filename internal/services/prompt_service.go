// Package services – PromptService
//
// This file implements PromptService, the application-level component that
// owns the idempotent prompt submission flow and the prompt read paths. It
// validates inputs, deduplicates by idempotency key, persists the record and
// its AI outcome atomically, and exposes paginated company-scoped listings.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include user/company identifiers and pagination parameters where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/kila-labs/go-prompt-backend/internal/ai"
	"github.com/kila-labs/go-prompt-backend/internal/domain"
	"github.com/kila-labs/go-prompt-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// defaultMaxPromptRunes caps the submitted prompt text.
	defaultMaxPromptRunes = 10000

	// defaultMaxFieldRunes caps identifiers and the idempotency key.
	defaultMaxFieldRunes = 100
)

// SubmitInput carries one prompt submission. All fields are required.
type SubmitInput struct {
	Prompt         string
	ProjectName    string
	UserID         string
	CompanyID      string
	IdempotencyKey string
}

// PromptService coordinates idempotent prompt persistence and synchronous AI
// processing.
type PromptService struct {
	DB *gorm.DB
	AI ai.Client

	// Optional guards; zero values fall back to the defaults above.
	MaxPromptRunes int
	MaxFieldRunes  int
}

// Submit runs the idempotent submission flow and returns the stored record
// plus a duplicate marker.
//
// Semantics:
//   - Validation failures return ErrValidation before any store access.
//   - A row already holding the idempotency key is returned verbatim with
//     duplicate=true; no write and no model call happen.
//   - Otherwise a pending row is created, the model is invoked once, and the
//     outcome (success text or failure diagnostic) is attached — all inside a
//     single transaction. Model failure is absorbed: the record commits with
//     status failed and the call still succeeds.
//   - A unique-key violation inside the transaction means a concurrent
//     identical submission won the race; the transaction rolls back and
//     ErrConflict is returned.
//   - Any other persistence fault rolls back and propagates as-is.
func (s *PromptService) Submit(ctx context.Context, in SubmitInput) (*domain.Prompt, bool, error) {
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("user.id", in.UserID),
			attribute.String("company.id", in.CompanyID),
		),
	)
	defer span.End()

	in.Prompt = strings.TrimSpace(in.Prompt)
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	in.UserID = strings.TrimSpace(in.UserID)
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if err := s.validate(in); err != nil {
		return nil, false, err
	}

	// Duplicate pre-check: a retried submission returns the original row and
	// never re-triggers the model.
	existing, err := repo.GetPromptByKey(ctx, s.DB, in.IdempotencyKey)
	if err == nil {
		span.SetAttributes(attribute.Bool("prompt.duplicate", true))
		return existing, true, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, err
	}

	p := &domain.Prompt{
		Prompt:          in.Prompt,
		ProjectName:     in.ProjectName,
		UserID:          in.UserID,
		CompanyID:       in.CompanyID,
		IdempotencyKey:  in.IdempotencyKey,
		ExecutionStatus: domain.StatusPending,
		IsActive:        true,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create first so the generated ID exists even if the AI step fails.
		if err := repo.CreatePrompt(ctx, tx, p); err != nil {
			return err
		}

		status, response := s.process(ctx, in.Prompt)
		if err := repo.UpdatePromptResult(ctx, tx, p.ID, status, response); err != nil {
			return err
		}
		p.ExecutionStatus = status
		p.AIResponse = response
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, false, ErrConflict
		}
		return nil, false, err
	}

	span.SetAttributes(attribute.Int("prompt.id", int(p.ID)))
	return p, false, nil
}

// process invokes the model once and folds the outcome into a terminal status
// plus stored text. It never returns an error: AI failure is a normal,
// reportable outcome of a submission.
func (s *PromptService) process(ctx context.Context, prompt string) (domain.ExecutionStatus, string) {
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "process")
	defer span.End()

	if s.AI == nil {
		return domain.StatusFailed, "Error: no model client configured"
	}
	text, err := s.AI.Generate(ctx, prompt)
	if err != nil {
		span.SetAttributes(attribute.String("ai.error", err.Error()))
		return domain.StatusFailed, "Error: " + err.Error()
	}
	return domain.StatusSuccess, text
}

// Get returns a prompt by its generated identifier, or ErrPromptNotFound.
func (s *PromptService) Get(ctx context.Context, id uint) (*domain.Prompt, error) {
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.Int("prompt.id", int(id))),
	)
	defer span.End()

	p, err := repo.GetPrompt(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByCompany returns a page of a company's prompts plus the total count.
// A company with zero prompts yields ErrCompanyNotFound so the read surface
// distinguishes "unknown company" from "known, empty page".
func (s *PromptService) ListByCompany(ctx context.Context, companyID string, page, pageSize int) ([]domain.Prompt, int64, error) {
	tr := otel.Tracer("services/PromptService")
	ctx, span := tr.Start(ctx, "ListByCompany",
		trace.WithAttributes(
			attribute.String("company.id", companyID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountPromptsByCompany(ctx, s.DB, companyID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, ErrCompanyNotFound
	}

	items, err := repo.ListPromptsByCompany(ctx, s.DB, companyID, offset, pageSize)
	return items, total, err
}

// CompanyStats returns the aggregate metadata handlers use for conditional
// responses on the company listing.
func (s *PromptService) CompanyStats(ctx context.Context, companyID string) (int64, *time.Time, error) {
	count, maxUpdated, err := repo.PromptsStats(ctx, s.DB, companyID)
	return count, maxUpdated, err
}

// validate enforces the required/max-length contract on a submission.
func (s *PromptService) validate(in SubmitInput) error {
	maxPrompt := s.MaxPromptRunes
	if maxPrompt <= 0 {
		maxPrompt = defaultMaxPromptRunes
	}
	maxField := s.MaxFieldRunes
	if maxField <= 0 {
		maxField = defaultMaxFieldRunes
	}

	if in.Prompt == "" || utf8.RuneCountInString(in.Prompt) > maxPrompt {
		return ErrValidation
	}
	for _, f := range []string{in.ProjectName, in.UserID, in.CompanyID, in.IdempotencyKey} {
		if f == "" || utf8.RuneCountInString(f) > maxField {
			return ErrValidation
		}
	}
	return nil
}
