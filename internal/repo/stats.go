// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the aggregate query feeding conditional
// responses on the company listing endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
)

// PromptsStats returns the row count and the greatest UpdatedAt among a
// company's prompts. Handlers fold both into a weak ETag: any insert or status
// update changes at least one of them.
//
// A company with no prompts yields (0, nil, nil). The latest timestamp comes
// from an ordered LIMIT 1 rather than MAX(), which SQLite would return as TEXT.
func PromptsStats(ctx context.Context, db *gorm.DB, companyID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Prompt{}).Where("company_id = ?", companyID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
