// Package insight is the request/response shuttle between the dashboard and
// the inference API: it serializes a data window into a prompt, invokes a
// structured inference call, and validates the typed result.
//
// Responses are session-scoped and ephemeral; nothing here is persisted.
package insight

import (
	"context"
	"errors"
	"fmt"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/gemini"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/metrics"
	"github.com/osteele/liquid"
)

// windowDays is the fixed analysis window the strategist sees.
const windowDays = 7

// ErrNoData is returned when there are no aggregated rows to analyze.
var ErrNoData = errors.New("no dashboard data available to analyze")

// Inferencer is the structured inference dependency, satisfied by
// *gemini.Client and by test doubles.
type Inferencer interface {
	GenerateStructured(ctx context.Context, systemInstruction, userPrompt string, schema *gemini.Schema, out any) error
	Configured() bool
}

// Service runs the strategist analysis and per-recommendation drafts.
type Service struct {
	client  Inferencer
	prompts *promptSet
}

// NewService creates the shuttle. It fails only if a prompt template does not
// parse, which is a programming error caught at boot.
func NewService(client Inferencer) (*Service, error) {
	prompts, err := parsePrompts()
	if err != nil {
		return nil, fmt.Errorf("insight: parse prompt templates: %w", err)
	}
	return &Service{client: client, prompts: prompts}, nil
}

// Configured reports whether the underlying inference client has credentials.
func (s *Service) Configured() bool { return s.client.Configured() }

// Analyze sends the most recent 7 aggregated rows to the strategist and
// returns the validated InsightResponse. A response that parses but violates
// the declared shape (no recommendations, unknown action kind, confidence out
// of range) is a schema mismatch, not a usable answer.
func (s *Service) Analyze(ctx context.Context, shopURL string, rows []domain.DailyMetric) (*domain.InsightResponse, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	window := metrics.Window(rows, windowDays)
	userPrompt, err := s.prompts.analysis.RenderString(liquid.Bindings{
		"days":       len(window),
		"shop_url":   shopURL,
		"data_table": metrics.FormatTable(window),
	})
	if err != nil {
		return nil, fmt.Errorf("insight: render analysis prompt: %w", err)
	}

	var resp domain.InsightResponse
	if err := s.client.GenerateStructured(ctx, systemPrompt, userPrompt, insightSchema, &resp); err != nil {
		return nil, err
	}
	if err := validateInsight(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DraftCreative produces an AdCreativeDraft acting on one recommendation.
func (s *Service) DraftCreative(ctx context.Context, shopURL string, rec domain.RecommendedAction) (*domain.AdCreativeDraft, error) {
	userPrompt, err := s.prompts.creative.RenderString(liquid.Bindings{
		"action":    string(rec.ActionType),
		"target":    rec.TargetEntity,
		"rationale": rec.Rationale,
		"shop_url":  shopURL,
	})
	if err != nil {
		return nil, fmt.Errorf("insight: render creative prompt: %w", err)
	}

	var draft domain.AdCreativeDraft
	if err := s.client.GenerateStructured(ctx, creativeSystemPrompt, userPrompt, creativeSchema, &draft); err != nil {
		return nil, err
	}
	if draft.Headline == "" || draft.PrimaryText == "" {
		return nil, fmt.Errorf("%w: empty creative fields", gemini.ErrSchemaMismatch)
	}
	if !draft.CallToAction.Valid() {
		return nil, fmt.Errorf("%w: call_to_action %q not in enum", gemini.ErrSchemaMismatch, draft.CallToAction)
	}
	return &draft, nil
}

// DraftEmail produces a customer email for a draft_email recommendation.
func (s *Service) DraftEmail(ctx context.Context, shopURL string, rec domain.RecommendedAction) (*domain.EmailDraft, error) {
	userPrompt, err := s.prompts.email.RenderString(liquid.Bindings{
		"target":    rec.TargetEntity,
		"rationale": rec.Rationale,
		"shop_url":  shopURL,
	})
	if err != nil {
		return nil, fmt.Errorf("insight: render email prompt: %w", err)
	}

	var draft domain.EmailDraft
	if err := s.client.GenerateStructured(ctx, systemPrompt, userPrompt, emailSchema, &draft); err != nil {
		return nil, err
	}
	if draft.Subject == "" || draft.Body == "" {
		return nil, fmt.Errorf("%w: empty email fields", gemini.ErrSchemaMismatch)
	}
	return &draft, nil
}

func validateInsight(r *domain.InsightResponse) error {
	if r.Summary == "" || r.PrimaryBottleneck == "" {
		return fmt.Errorf("%w: missing summary or bottleneck", gemini.ErrSchemaMismatch)
	}
	if len(r.Recommendations) == 0 {
		return fmt.Errorf("%w: missing recommendations", gemini.ErrSchemaMismatch)
	}
	for i, rec := range r.Recommendations {
		if !rec.ActionType.Valid() {
			return fmt.Errorf("%w: recommendation %d has unknown action %q", gemini.ErrSchemaMismatch, i, rec.ActionType)
		}
		if rec.ConfidenceScore < 1 || rec.ConfidenceScore > 100 {
			return fmt.Errorf("%w: recommendation %d confidence %d outside 1-100", gemini.ErrSchemaMismatch, i, rec.ConfidenceScore)
		}
	}
	return nil
}
