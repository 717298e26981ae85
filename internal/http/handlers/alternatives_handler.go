// Alternatives HTTP handler.
//
// POST /prompts/alternatives asks the model for rephrased variants of an
// origin prompt. Unlike the submission path, model failure here fails the
// request: there is no meaningful partial result to return.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kila-labs/go-prompt-backend/internal/services"
)

// SuggestAlternatives godoc
// @ID          suggestAlternatives
// @Summary     Generate alternative prompts
// @Description Calls the model with a strict-JSON instruction and returns the parsed
// @Description alternatives. Any model failure or contract violation yields 502.
// @Tags        Prompts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AlternativesRequest  true  "Origin prompt payload"
//
// @Success     200  {object}  services.AlternativesResult
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     502  {object}  handlers.ErrorResponse  "Model unavailable or malformed output"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /prompts/alternatives [post]
func (h *Handlers) SuggestAlternatives(c *gin.Context) {
	var req AlternativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.altSvc.Suggest(c.Request.Context(), req.UserID, req.OriginPrompt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "origin_prompt required, <= 10000 chars")
		case errors.Is(err, services.ErrModelUnavailable):
			fail(c, http.StatusBadGateway, ErrCodeModelUnavailable, "model backend unavailable")
		case errors.Is(err, services.ErrBadModelOutput):
			fail(c, http.StatusBadGateway, ErrCodeModelUnavailable, "model returned malformed output")
		default:
			failInternal(c, ErrCodeInternal, err)
		}
		return
	}

	ok(c, http.StatusOK, res)
}
