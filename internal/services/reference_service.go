// Package services – ReferenceService
//
// Thin read-only lookups over the company and user reference entities. The
// prompt core never mutates these tables.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
	"github.com/kila-labs/go-prompt-backend/internal/repo"
)

// ReferenceService exposes company/user reads.
type ReferenceService struct {
	DB *gorm.DB
}

// GetCompany returns a company by ID, or ErrCompanyNotFound.
func (s *ReferenceService) GetCompany(ctx context.Context, id uint) (*domain.Company, error) {
	c, err := repo.GetCompany(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetUser returns a user by ID, or ErrUserNotFound.
func (s *ReferenceService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
