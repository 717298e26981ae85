package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid schema leakage across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedPrompt(t *testing.T, db *gorm.DB, key, companyID string) *domain.Prompt {
	t.Helper()
	p := &domain.Prompt{
		Prompt:          "what is idempotency",
		ProjectName:     "proj",
		UserID:          "u1",
		CompanyID:       companyID,
		IdempotencyKey:  key,
		ExecutionStatus: domain.StatusPending,
		IsActive:        true,
	}
	if err := CreatePrompt(context.Background(), db, p); err != nil {
		t.Fatalf("seed prompt: %v", err)
	}
	return p
}

func TestCreatePrompt_AssignsID(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})

	p := seedPrompt(t, db, "k1", "acme")
	if p.ID == 0 {
		t.Fatalf("expected generated ID, got 0")
	}
	if p.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestCreatePrompt_DuplicateKey(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	seedPrompt(t, db, "k1", "acme")

	dup := &domain.Prompt{
		Prompt:          "retry",
		ProjectName:     "proj",
		UserID:          "u2",
		CompanyID:       "acme",
		IdempotencyKey:  "k1",
		ExecutionStatus: domain.StatusPending,
	}
	err := CreatePrompt(context.Background(), db, dup)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestGetPromptByKey(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	want := seedPrompt(t, db, "k1", "acme")

	got, err := GetPromptByKey(context.Background(), db, "k1")
	if err != nil {
		t.Fatalf("GetPromptByKey: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("got ID %d, want %d", got.ID, want.ID)
	}

	if _, err := GetPromptByKey(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}
}

func TestGetPrompt(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	want := seedPrompt(t, db, "k1", "acme")

	got, err := GetPrompt(context.Background(), db, want.ID)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if got.IdempotencyKey != "k1" {
		t.Fatalf("got key %q, want %q", got.IdempotencyKey, "k1")
	}

	if _, err := GetPrompt(context.Background(), db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePromptResult(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	p := seedPrompt(t, db, "k1", "acme")
	created := p.CreatedAt

	if err := UpdatePromptResult(context.Background(), db, p.ID, domain.StatusSuccess, "answer text"); err != nil {
		t.Fatalf("UpdatePromptResult: %v", err)
	}

	got, err := GetPrompt(context.Background(), db, p.ID)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if got.ExecutionStatus != domain.StatusSuccess || got.AIResponse != "answer text" {
		t.Fatalf("got (%s, %q), want (success, answer text)", got.ExecutionStatus, got.AIResponse)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt changed: %v -> %v", created, got.CreatedAt)
	}

	// Missing row maps to ErrNotFound.
	if err := UpdatePromptResult(context.Background(), db, 9999, domain.StatusFailed, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPromptsByCompany_OrderAndPaging(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	for i := 0; i < 5; i++ {
		seedPrompt(t, db, fmt.Sprintf("k%d", i), "acme")
	}
	seedPrompt(t, db, "other", "globex")

	total, err := CountPromptsByCompany(context.Background(), db, "acme")
	if err != nil || total != 5 {
		t.Fatalf("CountPromptsByCompany = (%d, %v), want (5, nil)", total, err)
	}

	page, err := ListPromptsByCompany(context.Background(), db, "acme", 0, 3)
	if err != nil {
		t.Fatalf("ListPromptsByCompany: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("got %d items, want 3", len(page))
	}
	// Newest first (id desc breaks created_at ties).
	if page[0].ID < page[1].ID {
		t.Fatalf("expected descending order, got IDs %d, %d", page[0].ID, page[1].ID)
	}

	rest, err := ListPromptsByCompany(context.Background(), db, "acme", 3, 3)
	if err != nil || len(rest) != 2 {
		t.Fatalf("second page = (%d items, %v), want (2, nil)", len(rest), err)
	}
}

func TestDeactivatePrompt(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	p := seedPrompt(t, db, "k1", "acme")

	if err := DeactivatePrompt(context.Background(), db, p.ID); err != nil {
		t.Fatalf("DeactivatePrompt: %v", err)
	}
	got, _ := GetPrompt(context.Background(), db, p.ID)
	if got.IsActive {
		t.Fatalf("expected IsActive=false after deactivation")
	}

	// Second call finds no active row.
	if err := DeactivatePrompt(context.Background(), db, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat deactivation, got %v", err)
	}
}

func TestPromptsStats(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})

	count, maxTS, err := PromptsStats(context.Background(), db, "acme")
	if err != nil || count != 0 || maxTS != nil {
		t.Fatalf("empty stats = (%d, %v, %v), want (0, nil, nil)", count, maxTS, err)
	}

	seedPrompt(t, db, "k1", "acme")
	time.Sleep(5 * time.Millisecond)
	seedPrompt(t, db, "k2", "acme")

	count, maxTS, err = PromptsStats(context.Background(), db, "acme")
	if err != nil {
		t.Fatalf("PromptsStats: %v", err)
	}
	if count != 2 || maxTS == nil {
		t.Fatalf("stats = (%d, %v), want (2, non-nil)", count, maxTS)
	}
}
