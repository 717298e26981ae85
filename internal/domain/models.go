// Package domain defines the persistence models for prompts and the
// company/user reference entities. These types are mapped with GORM and form
// the core data layer of the prompt backend.
package domain

import "time"

// ExecutionStatus tracks the outcome of the synchronous AI processing step
// attached to a prompt submission.
type ExecutionStatus string

const (
	StatusPending ExecutionStatus = "pending"
	StatusSuccess ExecutionStatus = "success"
	StatusFailed  ExecutionStatus = "failed"
)

// Valid reports whether s is one of the known execution statuses.
func (s ExecutionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is a final status. A prompt's status is set to a
// terminal value exactly once; it never moves backward to pending.
func (s ExecutionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Prompt is the central entity: one user-submitted prompt, deduplicated by a
// globally unique idempotency key.
//
// Fields:
//   - ID: generated integer primary key; visible to the caller as soon as the
//     row is flushed, even when the AI step later fails.
//   - Prompt: the submitted text (capped at 10k characters by the service).
//   - ProjectName / UserID / CompanyID: caller-supplied reference identifiers;
//     no foreign-key enforcement, only secondary indexes for the read paths.
//   - IdempotencyKey: unique across all rows. A retried submission with the
//     same key returns the original row instead of inserting a second one.
//   - ExecutionStatus: pending → success|failed, set exactly once.
//   - AIResponse: model output on success, diagnostic text on failure.
//   - CreatedAt: immutable once set. UpdatedAt: advances on any mutation.
//   - IsActive: soft-deactivation flag; rows are never physically deleted.
type Prompt struct {
	ID              uint            `json:"id"               gorm:"primaryKey;autoIncrement"`
	Prompt          string          `json:"prompt"           gorm:"type:text;not null"`
	ProjectName     string          `json:"project_name"     gorm:"type:varchar(100);not null;index:idx_project_user,priority:1"`
	UserID          string          `json:"user_id"          gorm:"type:varchar(100);not null;index:idx_project_user,priority:2;index:idx_user_created,priority:1"`
	CompanyID       string          `json:"company_id"       gorm:"type:varchar(100);not null;index:idx_company_prompts"`
	IdempotencyKey  string          `json:"idempotency_key"  gorm:"type:varchar(100);not null;uniqueIndex:ux_prompt_idempotency_key"`
	ExecutionStatus ExecutionStatus `json:"execution_status" gorm:"type:varchar(16);not null;default:'pending';check:execution_status IN ('pending','success','failed')"`
	AIResponse      string          `json:"ai_response,omitempty" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at"       gorm:"index:idx_user_created,priority:2"`
	UpdatedAt       time.Time       `json:"updated_at"`
	IsActive        bool            `json:"is_active"        gorm:"not null;default:true"`
}

// TableName returns the database table name for Prompt.
func (Prompt) TableName() string { return "prompts" }

// Company is a reference entity. The prompt core only stores the company
// identifier string and never mutates companies.
type Company struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"  gorm:"not null;default:true"`
}

// TableName returns the database table name for Company.
func (Company) TableName() string { return "companies" }

// User is a reference entity keyed by its own generated identifier.
type User struct {
	ID         uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	Username   string    `json:"username"    gorm:"type:varchar(100);not null;index"`
	Email      string    `json:"email"       gorm:"type:varchar(100);not null;index"`
	CompanyID  string    `json:"company_id"  gorm:"type:varchar(100);index"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
