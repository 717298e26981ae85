package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
)

func TestGetCompany(t *testing.T) {
	db := newTestDB(t, &domain.Company{})
	c := &domain.Company{Name: "Acme", IsActive: true}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	got, err := GetCompany(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetCompany: %v", err)
	}
	if got.Name != "Acme" {
		t.Fatalf("got name %q, want Acme", got.Name)
	}

	if _, err := GetCompany(context.Background(), db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	u := &domain.User{Username: "jdoe", Email: "jdoe@example.com", CompanyID: "acme"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	got, err := GetUser(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "jdoe" {
		t.Fatalf("got username %q, want jdoe", got.Username)
	}

	if _, err := GetUser(context.Background(), db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsersByCompany(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	for _, name := range []string{"a", "b"} {
		if err := db.Create(&domain.User{Username: name, Email: name + "@x.io", CompanyID: "acme"}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := db.Create(&domain.User{Username: "c", Email: "c@x.io", CompanyID: "globex"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := ListUsersByCompany(context.Background(), db, "acme")
	if err != nil {
		t.Fatalf("ListUsersByCompany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d users, want 2", len(got))
	}
}
