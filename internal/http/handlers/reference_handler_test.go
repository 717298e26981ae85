package handlers

import (
	"net/http"
	"testing"

	"github.com/kila-labs/go-prompt-backend/internal/domain"
	"github.com/kila-labs/go-prompt-backend/internal/services"
)

func TestGetCompanyHandler(t *testing.T) {
	ref := &stubRefSvc{company: &domain.Company{ID: 3, Name: "Acme"}}
	r := newTestRouter(&stubPromptSvc{}, &stubAltSvc{}, ref)

	w := doJSON(t, r, http.MethodGet, "/companies/3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/companies/0", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for zero id", w.Code)
	}
}

func TestGetCompanyHandler_NotFound(t *testing.T) {
	r := newTestRouter(&stubPromptSvc{}, &stubAltSvc{}, &stubRefSvc{err: services.ErrCompanyNotFound})
	w := doJSON(t, r, http.MethodGet, "/companies/3", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetUserHandler(t *testing.T) {
	ref := &stubRefSvc{user: &domain.User{ID: 9, Email: "dev@acme.test"}}
	r := newTestRouter(&stubPromptSvc{}, &stubAltSvc{}, ref)

	w := doJSON(t, r, http.MethodGet, "/users/9", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetUserHandler_NotFound(t *testing.T) {
	r := newTestRouter(&stubPromptSvc{}, &stubAltSvc{}, &stubRefSvc{err: services.ErrUserNotFound})
	w := doJSON(t, r, http.MethodGet, "/users/9", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
