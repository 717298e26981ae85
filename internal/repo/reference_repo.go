// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-only repository functions for the
// Company and User reference entities. The prompt core never mutates these
// tables; they exist for the thin reference read endpoints.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
)

// GetCompany fetches a company by its generated identifier, or ErrNotFound.
func GetCompany(ctx context.Context, db *gorm.DB, id uint) (*domain.Company, error) {
	var c domain.Company
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetUser fetches a user by its generated identifier, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsersByCompany returns all users attached to a company identifier,
// ordered by creation time ascending.
func ListUsersByCompany(ctx context.Context, db *gorm.DB, companyID string) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}
