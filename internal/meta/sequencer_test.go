package meta

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
)

func validInput() Input {
	return Input{
		Creative: domain.AdCreativeDraft{
			Headline:         "Back in stock",
			PrimaryText:      "Our best seller returned.",
			CallToAction:     domain.CTAShopNow,
			ImageDescription: "Product on white",
		},
		ImageURL: "https://cdn.example.com/creative.png",
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSimulationEmitsFourStagesAndSentinel(t *testing.T) {
	seq := NewSequencer(config.MetaConfig{}) // no credentials: simulation mode
	seq.SetSimulationDelay(0)

	if seq.Live() {
		t.Fatal("sequencer without credentials must be in simulation mode")
	}

	var stages []string
	res := seq.Deploy(context.Background(), validInput(), func(msg string) {
		stages = append(stages, msg)
	})

	if !res.Succeeded || !res.Simulated {
		t.Fatalf("expected simulated success, got %+v", res)
	}
	if res.AdID != SimulatedAdID {
		t.Errorf("AdID = %s, want sentinel", res.AdID)
	}
	if len(stages) != 4 {
		t.Fatalf("expected exactly 4 progress notifications, got %d: %v", len(stages), stages)
	}
	wantOrder := []string{"image", "campaign", "creative", "simulation"}
	for i, fragment := range wantOrder {
		if !strings.Contains(strings.ToLower(stages[i]), fragment) {
			t.Errorf("stage %d = %q, want it to mention %q", i, stages[i], fragment)
		}
	}
}

func TestSimulationAcceptsAllCTAs(t *testing.T) {
	seq := NewSequencer(config.MetaConfig{})
	seq.SetSimulationDelay(0)

	for _, cta := range []domain.CallToAction{
		domain.CTAShopNow, domain.CTALearnMore, domain.CTASignUp, domain.CTAGetOffer, domain.CTAContactUs,
	} {
		in := validInput()
		in.Creative.CallToAction = cta
		res := seq.Deploy(context.Background(), in, nil)
		if !res.Succeeded {
			t.Errorf("CTA %s: expected success, got %+v", cta, res)
		}
	}
}

func TestDeployRejectsInvalidInput(t *testing.T) {
	seq := NewSequencer(config.MetaConfig{})
	seq.SetSimulationDelay(0)

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty headline", func(in *Input) { in.Creative.Headline = "" }},
		{"empty primary text", func(in *Input) { in.Creative.PrimaryText = "" }},
		{"unknown CTA", func(in *Input) { in.Creative.CallToAction = "DO_THE_THING" }},
		{"empty image URL", func(in *Input) { in.ImageURL = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			var stages []string
			res := seq.Deploy(context.Background(), in, func(msg string) { stages = append(stages, msg) })
			if res.Succeeded {
				t.Fatal("expected failure result")
			}
			if res.Cause == "" {
				t.Error("failure must carry a cause")
			}
			if len(stages) != 0 {
				t.Errorf("invalid input must not emit progress, got %v", stages)
			}
		})
	}
}

// graphStub fakes the Graph API: it records each object-creation call and
// can be told to fail at a given path.
type graphStub struct {
	mu       sync.Mutex
	calls    []string
	failPath string
	lastForm map[string]map[string]string
}

func newGraphStub() *graphStub {
	return &graphStub{lastForm: map[string]map[string]string{}}
}

func (g *graphStub) handler(t *testing.T, imageData []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".png") {
			if r.URL.Path == "/creative.png" {
				w.Write(imageData)
				return
			}
			w.WriteHeader(http.StatusNotFound)
			return
		}

		g.mu.Lock()
		g.calls = append(g.calls, r.URL.Path)
		g.mu.Unlock()

		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		if r.PostForm.Get("access_token") == "" {
			t.Errorf("%s missing access_token", r.URL.Path)
		}
		form := map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		g.mu.Lock()
		g.lastForm[r.URL.Path] = form
		g.mu.Unlock()

		if r.URL.Path == g.failPath {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid parameter"}}`))
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, "/adimages"):
			w.Write([]byte(`{"images":{"growifyx_creative":{"hash":"abc123hash"}}}`))
		case strings.HasSuffix(r.URL.Path, "/campaigns"):
			w.Write([]byte(`{"id":"cmp_1"}`))
		case strings.HasSuffix(r.URL.Path, "/adsets"):
			w.Write([]byte(`{"id":"set_1"}`))
		case strings.HasSuffix(r.URL.Path, "/adcreatives"):
			w.Write([]byte(`{"id":"cre_1"}`))
		case strings.HasSuffix(r.URL.Path, "/ads"):
			w.Write([]byte(`{"id":"ad_1"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func liveSequencer(serverURL string) *Sequencer {
	return NewSequencer(config.MetaConfig{
		AccessToken:      "tok",
		AdAccountID:      "42",
		PageID:           "7",
		BaseURL:          serverURL,
		DestinationLink:  "https://demo.myshopify.com",
		DailyBudgetCents: 50000,
	})
}

func TestLiveDeploySuccess(t *testing.T) {
	stub := newGraphStub()
	server := httptest.NewServer(stub.handler(t, pngBytes(t)))
	defer server.Close()

	seq := liveSequencer(server.URL)
	in := validInput()
	in.ImageURL = server.URL + "/creative.png"

	res := seq.Deploy(context.Background(), in, nil)
	if !res.Succeeded {
		t.Fatalf("deploy failed: %+v", res)
	}
	if res.Simulated {
		t.Error("live deploy must not be marked simulated")
	}
	if res.AdID != "ad_1" {
		t.Errorf("AdID = %s, want ad_1", res.AdID)
	}

	want := []string{"/act_42/adimages", "/act_42/campaigns", "/act_42/adsets", "/act_42/adcreatives", "/act_42/ads"}
	if len(stub.calls) != len(want) {
		t.Fatalf("calls = %v", stub.calls)
	}
	for i := range want {
		if stub.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, stub.calls[i], want[i])
		}
	}

	// The fixed objective and paused states
	if f := stub.lastForm["/act_42/campaigns"]; f["objective"] != "OUTCOME_SALES" || f["status"] != "PAUSED" {
		t.Errorf("campaign form: %v", f)
	}
	if f := stub.lastForm["/act_42/adsets"]; f["campaign_id"] != "cmp_1" || f["daily_budget"] != "50000" || f["status"] != "PAUSED" {
		t.Errorf("ad set form: %v", f)
	}
	// The image hash threads into the creative, the ids into the ad
	if f := stub.lastForm["/act_42/adcreatives"]; !strings.Contains(f["object_story_spec"], "abc123hash") {
		t.Errorf("creative form missing image hash: %v", f)
	}
	if f := stub.lastForm["/act_42/ads"]; f["adset_id"] != "set_1" || !strings.Contains(f["creative"], "cre_1") || f["status"] != "PAUSED" {
		t.Errorf("ad form: %v", f)
	}
}

func TestLiveDeployFailureStopsSequence(t *testing.T) {
	stub := newGraphStub()
	stub.failPath = "/act_42/adsets"
	server := httptest.NewServer(stub.handler(t, pngBytes(t)))
	defer server.Close()

	seq := liveSequencer(server.URL)
	in := validInput()
	in.ImageURL = server.URL + "/creative.png"

	res := seq.Deploy(context.Background(), in, nil)
	if res.Succeeded {
		t.Fatal("expected failure result")
	}
	if res.FailedStep != StageCreateAdSet {
		t.Errorf("FailedStep = %s, want %s", res.FailedStep, StageCreateAdSet)
	}
	if !strings.Contains(res.Cause, "Invalid parameter") {
		t.Errorf("cause must contain the underlying error text, got %q", res.Cause)
	}

	// Steps after the failing one are never attempted
	for _, call := range stub.calls {
		if strings.HasSuffix(call, "/adcreatives") || strings.HasSuffix(call, "/ads") {
			t.Errorf("step after failure was attempted: %s", call)
		}
	}

	// Objects created before the failure are reported, not rolled back
	if res.Partial.ImageHash != "abc123hash" || res.Partial.CampaignID != "cmp_1" {
		t.Errorf("partial ids: %+v", res.Partial)
	}
	if res.Partial.AdSetID != "" {
		t.Errorf("failed step must not report an id: %+v", res.Partial)
	}
}

func TestLiveDeployImageFetchFailureCreatesNothing(t *testing.T) {
	stub := newGraphStub()
	server := httptest.NewServer(stub.handler(t, pngBytes(t)))
	defer server.Close()

	seq := liveSequencer(server.URL)
	in := validInput()
	in.ImageURL = server.URL + "/missing.png" // stub 404s unknown paths

	res := seq.Deploy(context.Background(), in, nil)
	if res.Succeeded {
		t.Fatal("expected failure result")
	}
	if res.FailedStep != StageUploadImage {
		t.Errorf("FailedStep = %s", res.FailedStep)
	}
	for _, call := range stub.calls {
		if strings.HasPrefix(call, "/act_") {
			t.Errorf("no platform object may be created after image failure, saw %s", call)
		}
	}
}

func TestLiveDeployRejectsNonImageBytes(t *testing.T) {
	stub := newGraphStub()
	server := httptest.NewServer(stub.handler(t, []byte("<html>not an image</html>")))
	defer server.Close()

	seq := liveSequencer(server.URL)
	in := validInput()
	in.ImageURL = server.URL + "/creative.png"

	res := seq.Deploy(context.Background(), in, nil)
	if res.Succeeded {
		t.Fatal("expected failure for non-image bytes")
	}
	if res.FailedStep != StageUploadImage {
		t.Errorf("FailedStep = %s", res.FailedStep)
	}
}

func TestLiveDeployRequiresPageID(t *testing.T) {
	seq := NewSequencer(config.MetaConfig{
		AccessToken: "tok",
		AdAccountID: "42",
		BaseURL:     "http://unused",
	})
	res := seq.Deploy(context.Background(), validInput(), nil)
	if res.Succeeded {
		t.Fatal("expected failure without page id")
	}
	if !strings.Contains(res.Cause, "page id") {
		t.Errorf("cause = %q", res.Cause)
	}
}
