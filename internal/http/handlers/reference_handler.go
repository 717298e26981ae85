// Reference-entity HTTP handlers.
//
// Thin reads over companies and users. The prompt core stores reference
// identifiers without FK enforcement; these endpoints let clients resolve
// them.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kila-labs/go-prompt-backend/internal/services"
)

// GetCompany godoc
// @ID          getCompany
// @Summary     Fetch a company
// @Tags        Reference
// @Produce     json
//
// @Param       id  path  int  true  "Company ID"  minimum(1)
//
// @Success     200  {object}  domain.Company
// @Failure     400  {object}  handlers.ErrorResponse  "Non-numeric ID"
// @Failure     404  {object}  handlers.ErrorResponse  "Company not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies/{id} [get]
func (h *Handlers) GetCompany(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}

	company, err := h.refSvc.GetCompany(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "company not found")
			return
		}
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, company)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user
// @Tags        Reference
// @Produce     json
//
// @Param       id  path  int  true  "User ID"  minimum(1)
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Non-numeric ID"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}

	user, err := h.refSvc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		failInternal(c, ErrCodeInternal, err)
		return
	}
	ok(c, http.StatusOK, user)
}
