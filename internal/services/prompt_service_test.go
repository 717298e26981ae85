package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
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

// fakeModel is a canned ai.Client.
type fakeModel struct {
	text    string
	err     error
	healthy bool
	calls   int
}

func (f *fakeModel) Generate(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}
func (f *fakeModel) CheckHealth(context.Context) bool { return f.healthy }
func (f *fakeModel) Name() string                     { return "fake" }

func validInput(key string) SubmitInput {
	return SubmitInput{
		Prompt:         "explain the CAP theorem",
		ProjectName:    "proj",
		UserID:         "u1",
		CompanyID:      "acme",
		IdempotencyKey: key,
	}
}

func TestSubmit_Success(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	model := &fakeModel{text: "consistency, availability, partition tolerance"}
	svc := &PromptService{DB: db, AI: model}

	rec, dup, err := svc.Submit(context.Background(), validInput("k1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dup {
		t.Fatalf("expected dup=false on first submission")
	}
	if rec.ID == 0 {
		t.Fatalf("expected generated ID")
	}
	if rec.ExecutionStatus != domain.StatusSuccess {
		t.Fatalf("got status %s, want success", rec.ExecutionStatus)
	}
	if rec.AIResponse != model.text {
		t.Fatalf("got response %q", rec.AIResponse)
	}
	if model.calls != 1 {
		t.Fatalf("model called %d times, want 1", model.calls)
	}
}

func TestSubmit_DuplicateKeyReturnsOriginal(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	model := &fakeModel{text: "first answer"}
	svc := &PromptService{DB: db, AI: model}

	first, _, err := svc.Submit(context.Background(), validInput("k1"))
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// Retried submission with different text must not write or call the model.
	in := validInput("k1")
	in.Prompt = "completely different text"
	second, dup, err := svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if !dup {
		t.Fatalf("expected dup=true")
	}
	if second.ID != first.ID || second.Prompt != first.Prompt {
		t.Fatalf("expected original record back, got %+v", second)
	}
	if model.calls != 1 {
		t.Fatalf("model called %d times, want 1 (no side effect on replay)", model.calls)
	}

	var count int64
	db.Model(&domain.Prompt{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestSubmit_Validation(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	model := &fakeModel{}
	svc := &PromptService{DB: db, AI: model}

	cases := []SubmitInput{
		{},
		func() SubmitInput { in := validInput("k"); in.Prompt = ""; return in }(),
		func() SubmitInput { in := validInput("k"); in.Prompt = strings.Repeat("a", 10001); return in }(),
		func() SubmitInput { in := validInput("k"); in.UserID = ""; return in }(),
		func() SubmitInput { in := validInput("k"); in.CompanyID = strings.Repeat("c", 101); return in }(),
		func() SubmitInput { in := validInput(strings.Repeat("k", 101)); return in }(),
	}
	for i, in := range cases {
		if _, _, err := svc.Submit(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called on validation failure")
	}

	var count int64
	db.Model(&domain.Prompt{}).Count(&count)
	if count != 0 {
		t.Fatalf("no store access expected, found %d rows", count)
	}
}

func TestSubmit_ModelFailureAbsorbed(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	model := &fakeModel{err: errors.New("backend down")}
	svc := &PromptService{DB: db, AI: model}

	rec, dup, err := svc.Submit(context.Background(), validInput("k1"))
	if err != nil {
		t.Fatalf("Submit must absorb model failure, got %v", err)
	}
	if dup {
		t.Fatalf("expected dup=false")
	}
	if rec.ExecutionStatus != domain.StatusFailed {
		t.Fatalf("got status %s, want failed", rec.ExecutionStatus)
	}
	if !strings.HasPrefix(rec.AIResponse, "Error: ") {
		t.Fatalf("expected diagnostic response, got %q", rec.AIResponse)
	}
	if rec.ID == 0 {
		t.Fatalf("generated ID must be visible even when the AI step fails")
	}

	// The row committed; a replay finds it.
	got, dup2, err := svc.Submit(context.Background(), validInput("k1"))
	if err != nil || !dup2 {
		t.Fatalf("replay = (%v, %v), want (dup, nil)", dup2, err)
	}
	if got.ExecutionStatus != domain.StatusFailed {
		t.Fatalf("replay status %s, want failed", got.ExecutionStatus)
	}
}

func TestSubmit_RaceLosesWithConflict(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	model := &fakeModel{text: "ok"}
	svc := &PromptService{DB: db, AI: model}

	// Simulate a concurrent identical submission winning between the
	// pre-check and the insert: a callback commits a conflicting row on a
	// second connection just before the create statement runs. The shared
	// in-memory DSN makes the winner visible to the losing transaction.
	winner, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open second connection: %v", err)
	}
	injected := false
	err = db.Callback().Create().Before("gorm:create").Register("test_race", func(*gorm.DB) {
		if injected {
			return
		}
		injected = true
		winner.Exec(
			`INSERT INTO prompts (prompt, project_name, user_id, company_id, idempotency_key, execution_status, is_active, created_at, updated_at)
			 VALUES ('winner', 'proj', 'u2', 'acme', 'k1', 'success', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, _, err = svc.Submit(context.Background(), validInput("k1"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Only the winner's row exists.
	var count int64
	db.Model(&domain.Prompt{}).Where("idempotency_key = ?", "k1").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 row after race, got %d", count)
	}
}

func TestGet(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	svc := &PromptService{DB: db, AI: &fakeModel{text: "x"}}

	rec, _, err := svc.Submit(context.Background(), validInput("k1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, err := svc.Get(context.Background(), rec.ID)
	if err != nil || got.ID != rec.ID {
		t.Fatalf("Get = (%v, %v)", got, err)
	}

	if _, err := svc.Get(context.Background(), 9999); !errors.Is(err, ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
}

func TestListByCompany(t *testing.T) {
	db := newTestDB(t, &domain.Prompt{})
	svc := &PromptService{DB: db, AI: &fakeModel{text: "x"}}

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Submit(context.Background(), validInput(fmt.Sprintf("k%d", i))); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := svc.ListByCompany(context.Background(), "acme", 1, 2)
	if err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("got (total=%d, len=%d), want (3, 2)", total, len(items))
	}

	// Unknown company distinguishes from an empty page.
	if _, _, err := svc.ListByCompany(context.Background(), "ghost", 1, 20); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}
