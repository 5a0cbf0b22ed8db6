package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/gemini"
)

// fakeInferencer returns a canned JSON payload decoded into out, or an error.
type fakeInferencer struct {
	payload    string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeInferencer) Configured() bool { return true }

func (f *fakeInferencer) GenerateStructured(_ context.Context, system, user string, _ *gemini.Schema, out any) error {
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return f.err
	}
	if err := json.Unmarshal([]byte(f.payload), out); err != nil {
		return errors.Join(gemini.ErrSchemaMismatch, err)
	}
	return nil
}

func sampleRows() []domain.DailyMetric {
	return []domain.DailyMetric{
		{Date: "2024-01-01", Sales: 1000, Spend: 500, ROAS: 2},
		{Date: "2024-01-02", Sales: 0, Spend: 300, ROAS: 0},
	}
}

func TestAnalyze(t *testing.T) {
	fake := &fakeInferencer{payload: `{
		"summary": "Spend is flat, sales dipped.",
		"primary_bottleneck": "Low Sales",
		"recommendations": [
			{"action_type": "scale_ad", "confidence_score": 80, "rationale": "ROAS above 2.", "target_entity": "FB Ad Campaign"}
		]
	}`}
	svc, err := NewService(fake)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	resp, err := svc.Analyze(context.Background(), "demo.myshopify.com", sampleRows())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if resp.PrimaryBottleneck != "Low Sales" {
		t.Errorf("bottleneck = %s", resp.PrimaryBottleneck)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].ActionType != domain.ActionScaleAd {
		t.Errorf("recommendations: %+v", resp.Recommendations)
	}

	// Prompt carries the rendered data table and the shop
	if !strings.Contains(fake.lastUser, "2024-01-01") {
		t.Errorf("prompt missing data table:\n%s", fake.lastUser)
	}
	if !strings.Contains(fake.lastUser, "demo.myshopify.com") {
		t.Error("prompt missing shop URL")
	}
	if !strings.Contains(fake.lastSystem, "kill_ad, scale_ad, draft_email, launch_promo") {
		t.Error("system prompt missing action constraint")
	}
}

func TestAnalyzeWindowsToSevenRows(t *testing.T) {
	var rows []domain.DailyMetric
	for _, d := range []string{"01", "02", "03", "04", "05", "06", "07", "08", "09"} {
		rows = append(rows, domain.DailyMetric{Date: "2024-01-" + d, Sales: 1, Spend: 1, ROAS: 1})
	}
	fake := &fakeInferencer{payload: `{
		"summary": "s", "primary_bottleneck": "b",
		"recommendations": [{"action_type": "kill_ad", "confidence_score": 50, "rationale": "r", "target_entity": "t"}]
	}`}
	svc, _ := NewService(fake)

	if _, err := svc.Analyze(context.Background(), "shop", rows); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if strings.Contains(fake.lastUser, "2024-01-02") {
		t.Error("prompt includes rows outside the 7-day window")
	}
	if !strings.Contains(fake.lastUser, "2024-01-09") {
		t.Error("prompt missing the most recent row")
	}
	if !strings.Contains(fake.lastUser, "last 7 days") {
		t.Errorf("prompt does not state the window:\n%s", fake.lastUser)
	}
}

func TestAnalyzeNoData(t *testing.T) {
	svc, _ := NewService(&fakeInferencer{})
	_, err := svc.Analyze(context.Background(), "shop", nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestAnalyzeMissingRecommendations(t *testing.T) {
	fake := &fakeInferencer{payload: `{"summary": "s", "primary_bottleneck": "b", "recommendations": []}`}
	svc, _ := NewService(fake)
	_, err := svc.Analyze(context.Background(), "shop", sampleRows())
	if !errors.Is(err, gemini.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch for empty recommendations, got %v", err)
	}
}

func TestAnalyzeUnknownActionKind(t *testing.T) {
	fake := &fakeInferencer{payload: `{
		"summary": "s", "primary_bottleneck": "b",
		"recommendations": [{"action_type": "buy_lottery_tickets", "confidence_score": 99, "rationale": "r", "target_entity": "t"}]
	}`}
	svc, _ := NewService(fake)
	_, err := svc.Analyze(context.Background(), "shop", sampleRows())
	if !errors.Is(err, gemini.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch for unknown action, got %v", err)
	}
}

func TestAnalyzeConfidenceOutOfRange(t *testing.T) {
	fake := &fakeInferencer{payload: `{
		"summary": "s", "primary_bottleneck": "b",
		"recommendations": [{"action_type": "kill_ad", "confidence_score": 0, "rationale": "r", "target_entity": "t"}]
	}`}
	svc, _ := NewService(fake)
	_, err := svc.Analyze(context.Background(), "shop", sampleRows())
	if !errors.Is(err, gemini.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch for confidence 0, got %v", err)
	}
}

func TestDraftCreative(t *testing.T) {
	fake := &fakeInferencer{payload: `{
		"headline": "Back in stock",
		"primary_text": "Our best seller returned. Get yours before it sells out again.",
		"call_to_action": "SHOP_NOW",
		"image_description": "Product on a plain white background."
	}`}
	svc, _ := NewService(fake)

	rec := domain.RecommendedAction{
		ActionType:   domain.ActionLaunchPromo,
		Rationale:    "High demand, no active promo.",
		TargetEntity: "Bestseller Tee",
	}
	draft, err := svc.DraftCreative(context.Background(), "demo.myshopify.com", rec)
	if err != nil {
		t.Fatalf("DraftCreative failed: %v", err)
	}
	if draft.CallToAction != domain.CTAShopNow {
		t.Errorf("CTA = %s", draft.CallToAction)
	}
	if !strings.Contains(fake.lastUser, "Bestseller Tee") {
		t.Error("prompt missing target entity")
	}
}

func TestDraftCreativeInvalidCTA(t *testing.T) {
	fake := &fakeInferencer{payload: `{
		"headline": "h", "primary_text": "p",
		"call_to_action": "SMASH_THAT_BUTTON",
		"image_description": "i"
	}`}
	svc, _ := NewService(fake)
	_, err := svc.DraftCreative(context.Background(), "shop", domain.RecommendedAction{ActionType: domain.ActionScaleAd})
	if !errors.Is(err, gemini.ErrSchemaMismatch) {
		t.Errorf("expected schema mismatch for invalid CTA, got %v", err)
	}
}

func TestDraftEmail(t *testing.T) {
	fake := &fakeInferencer{payload: `{"subject": "We miss you", "body": "Come back for 10% off."}`}
	svc, _ := NewService(fake)
	draft, err := svc.DraftEmail(context.Background(), "shop", domain.RecommendedAction{
		ActionType: domain.ActionDraftEmail, TargetEntity: "Lapsed customers",
	})
	if err != nil {
		t.Fatalf("DraftEmail failed: %v", err)
	}
	if draft.Subject == "" || draft.Body == "" {
		t.Errorf("empty draft: %+v", draft)
	}
}
