// Package services – AlternativesService
//
// This file implements AlternativesService, which asks the model for a set of
// rephrased "alternative prompts" for a user-supplied origin prompt. Unlike
// the submission path, model failure here is a hard request failure: there is
// no meaningful partial result to return.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kila-labs/go-prompt-backend/internal/ai"
)

// alternativesInstruction is the fixed system instruction sent ahead of the
// origin prompt. The model must answer with exactly this JSON shape and
// nothing else; any deviation fails the request.
const alternativesInstruction = `You are a prompt engineering assistant. Given the user's prompt, produce 3 to 5 alternative phrasings that improve clarity, specificity, or creativity. Respond with ONLY a valid JSON object, no markdown, no commentary, shaped exactly as:
{"original_prompt": "<the user's prompt>", "alternatives": [{"category": "<one word, e.g. specific, creative, concise>", "prompt": "<rewritten prompt>", "reason": "<why this phrasing helps>"}], "total_count": <number of alternatives>}`

// Alternative is one suggested rephrasing of the origin prompt.
type Alternative struct {
	Category string `json:"category"`
	Prompt   string `json:"prompt"`
	Reason   string `json:"reason"`
}

// AlternativesResult is the strict JSON contract the model must honor.
type AlternativesResult struct {
	OriginalPrompt string        `json:"original_prompt"`
	Alternatives   []Alternative `json:"alternatives"`
	TotalCount     int           `json:"total_count"`
}

// AlternativesService generates alternative prompt suggestions via the model
// client.
type AlternativesService struct {
	AI ai.Client

	// MaxPromptRunes caps the origin prompt; zero falls back to the
	// submission default.
	MaxPromptRunes int
}

// Suggest asks the model for alternatives to originPrompt.
//
// Errors:
//   - ErrValidation when the origin prompt is empty or over-length.
//   - ErrModelUnavailable when the health probe fails or the generation call
//     errors.
//   - ErrBadModelOutput when the model answers with anything other than the
//     strict JSON shape above. No fallback reinterpretation is attempted.
func (s *AlternativesService) Suggest(ctx context.Context, userID, originPrompt string) (*AlternativesResult, error) {
	tr := otel.Tracer("services/AlternativesService")
	ctx, span := tr.Start(ctx, "Suggest",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	originPrompt = strings.TrimSpace(originPrompt)
	max := s.MaxPromptRunes
	if max <= 0 {
		max = defaultMaxPromptRunes
	}
	if originPrompt == "" || utf8.RuneCountInString(originPrompt) > max {
		return nil, ErrValidation
	}
	if s.AI == nil {
		return nil, ErrModelUnavailable
	}

	// Fail fast before the (potentially slow) generation call.
	if !s.AI.CheckHealth(ctx) {
		return nil, ErrModelUnavailable
	}

	raw, err := s.AI.Generate(ctx, alternativesInstruction+"\n\nUser prompt: "+originPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	out, err := parseAlternatives(raw)
	if err != nil {
		span.SetAttributes(attribute.String("ai.parse_error", err.Error()))
		return nil, err
	}
	if out.OriginalPrompt == "" {
		out.OriginalPrompt = originPrompt
	}
	return out, nil
}

// titleCaser normalizes category labels ("specific" -> "Specific").
var titleCaser = cases.Title(language.English)

// parseAlternatives decodes and validates the model's answer against the
// strict contract. Leading/trailing whitespace is tolerated; anything else is
// ErrBadModelOutput.
func parseAlternatives(raw string) (*AlternativesResult, error) {
	var out AlternativesResult
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	// Trailing garbage after the JSON object also violates the contract.
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing content after JSON object", ErrBadModelOutput)
	}

	if len(out.Alternatives) == 0 {
		return nil, fmt.Errorf("%w: empty alternatives", ErrBadModelOutput)
	}
	for i := range out.Alternatives {
		a := &out.Alternatives[i]
		a.Category = strings.TrimSpace(a.Category)
		a.Prompt = strings.TrimSpace(a.Prompt)
		a.Reason = strings.TrimSpace(a.Reason)
		if a.Category == "" || a.Prompt == "" {
			return nil, fmt.Errorf("%w: alternative %d missing category or prompt", ErrBadModelOutput, i)
		}
		a.Category = titleCaser.String(strings.ToLower(a.Category))
	}
	out.TotalCount = len(out.Alternatives)
	return &out, nil
}
