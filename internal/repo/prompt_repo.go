// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Prompt
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a prompt is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Unique-index violations on the idempotency key are mapped to
//     ErrDuplicateKey so callers can distinguish a lost idempotency race from
//     any other persistence fault.
//   - On other DB errors (connectivity issues, missing tables, etc.), the raw
//     gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateKey indicates that a prompt row with the same idempotency key
// already exists (unique index ux_prompt_idempotency_key).
var ErrDuplicateKey = errors.New("duplicate idempotency key")

// CreatePrompt inserts the given prompt row. GORM populates the generated ID
// on p before the enclosing transaction commits, so the identifier is visible
// to the caller even when a later step fails.
//
// A unique violation on the idempotency key is mapped to ErrDuplicateKey.
func CreatePrompt(ctx context.Context, db *gorm.DB, p *domain.Prompt) error {
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetPromptByKey fetches the prompt holding the given idempotency key, or
// ErrNotFound. This is the duplicate pre-check of the idempotent submit path.
func GetPromptByKey(ctx context.Context, db *gorm.DB, key string) (*domain.Prompt, error) {
	var p domain.Prompt
	err := db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPrompt fetches a single prompt by its generated identifier, or
// ErrNotFound.
func GetPrompt(ctx context.Context, db *gorm.DB, id uint) (*domain.Prompt, error) {
	var p domain.Prompt
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountPromptsByCompany returns the total number of prompts recorded for a
// company. On DB error, it returns the error.
func CountPromptsByCompany(ctx context.Context, db *gorm.DB, companyID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Prompt{}).
		Where("company_id = ?", companyID).
		Count(&total).Error
	return total, err
}

// ListPromptsByCompany returns a paginated slice of prompts for a company,
// ordered by creation time descending. Use CountPromptsByCompany to obtain
// the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListPromptsByCompany(ctx context.Context, db *gorm.DB, companyID string, offset, limit int) ([]domain.Prompt, error) {
	var out []domain.Prompt
	err := db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdatePromptResult attaches the AI outcome to an existing prompt row:
// terminal execution status plus the response (or diagnostic) text.
// UpdatedAt advances; CreatedAt is untouched. Returns ErrNotFound when no row
// matches.
func UpdatePromptResult(ctx context.Context, db *gorm.DB, id uint, status domain.ExecutionStatus, response string) error {
	res := db.WithContext(ctx).
		Model(&domain.Prompt{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"execution_status": status,
			"ai_response":      response,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivatePrompt clears the active flag on a prompt. Rows are never
// physically deleted by this subsystem.
func DeactivatePrompt(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Prompt{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isUniqueViolation detects unique-constraint failures across drivers.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
