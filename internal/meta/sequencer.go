package meta

import (
	"context"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/logger"
)

// Stage names the five states of the deployment sequence, in strict order.
// Each stage's failure is terminal; only CreateAd's success completes the run.
type Stage string

const (
	StageUploadImage      Stage = "upload_image"
	StageCreateCampaign   Stage = "create_campaign"
	StageCreateAdSet      Stage = "create_ad_set"
	StageCreateAdCreative Stage = "create_ad_creative"
	StageCreateAd         Stage = "create_ad"
)

// SimulatedAdID is the sentinel success marker returned in simulation mode.
const SimulatedAdID = "SIMULATED_DEPLOYMENT"

// defaultSimulationDelay is the artificial pause between simulated progress
// stages, so the workflow can be demonstrated without live ad-spend risk.
const defaultSimulationDelay = 1500 * time.Millisecond

// Progress receives user-visible progress notifications as the sequence runs.
type Progress func(message string)

// simulationStages are the exact four notifications emitted in simulation
// mode, in fixed order.
var simulationStages = []string{
	"Uploading creative image...",
	"Creating campaign...",
	"Assembling ad set and creative...",
	"Campaign deployed (simulation only, no ads were created)",
}

// Input is a finished ad creative plus the image to attach.
type Input struct {
	Creative domain.AdCreativeDraft `json:"creative"`
	ImageURL string                 `json:"image_url"`
}

// validate applies the input contract: non-empty copy, a known CTA, and a
// fetchable image locator.
func (in Input) validate() string {
	switch {
	case in.Creative.Headline == "":
		return "headline must not be empty"
	case in.Creative.PrimaryText == "":
		return "primary text must not be empty"
	case !in.Creative.CallToAction.Valid():
		return "call to action " + string(in.Creative.CallToAction) + " is not supported"
	case in.ImageURL == "":
		return "image URL must not be empty"
	}
	return ""
}

// Partial lists remote objects already created when a later step failed.
// The platform keeps them (paused); nothing rolls them back automatically,
// so the caller needs the ids to clean up by hand.
type Partial struct {
	ImageHash  string `json:"image_hash,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`
	AdSetID    string `json:"ad_set_id,omitempty"`
	CreativeID string `json:"creative_id,omitempty"`
}

// Result is the sequencer's discriminated outcome. The sequencer never
// panics or leaks errors past its boundary: callers switch on Succeeded.
type Result struct {
	Succeeded  bool    `json:"succeeded"`
	Simulated  bool    `json:"simulated"`
	AdID       string  `json:"ad_id,omitempty"`
	FailedStep Stage   `json:"failed_step,omitempty"`
	Cause      string  `json:"cause,omitempty"`
	Partial    Partial `json:"partial,omitempty"`
}

func failure(step Stage, cause string, partial Partial) Result {
	return Result{FailedStep: step, Cause: cause, Partial: partial}
}

// Sequencer runs the ordered external object-creation sequence, or simulates
// it when no live credentials are configured.
type Sequencer struct {
	client   *Client // nil in simulation mode
	live     bool
	pageID   string
	simDelay time.Duration
}

// NewSequencer selects live or simulation mode from the configuration:
// live when both the access token and ad account id are present.
func NewSequencer(cfg config.MetaConfig) *Sequencer {
	s := &Sequencer{live: cfg.LiveMode(), pageID: cfg.PageID, simDelay: defaultSimulationDelay}
	if s.live {
		s.client = NewClient(cfg)
	}
	return s
}

// Live reports whether the sequencer will create real platform objects.
func (s *Sequencer) Live() bool { return s.live }

// Client returns the underlying Graph API client (nil in simulation mode).
// Exposed so tests can swap the HTTP transport.
func (s *Sequencer) Client() *Client { return s.client }

// SetSimulationDelay overrides the artificial stage delay (useful for testing)
func (s *Sequencer) SetSimulationDelay(d time.Duration) { s.simDelay = d }

// Deploy runs the five steps strictly in order, each depending on the
// previous step's output. A failing step stops the sequence immediately;
// steps already completed are reported in the failure's Partial ids and are
// NOT rolled back.
func (s *Sequencer) Deploy(ctx context.Context, in Input, progress Progress) Result {
	if progress == nil {
		progress = func(string) {}
	}
	if cause := in.validate(); cause != "" {
		return failure("", cause, Partial{})
	}

	if !s.live {
		return s.simulate(ctx, progress)
	}
	if s.pageID == "" {
		return failure("", "meta page id is not configured", Partial{})
	}

	var partial Partial

	// Step 1: fetch and upload the image. Failing here creates nothing.
	progress("Uploading creative image...")
	imageBytes, err := s.client.FetchImage(ctx, in.ImageURL)
	if err != nil {
		return failure(StageUploadImage, err.Error(), partial)
	}
	imageHash, err := s.client.UploadImage(ctx, imageBytes)
	if err != nil {
		return failure(StageUploadImage, err.Error(), partial)
	}
	partial.ImageHash = imageHash

	// Step 2: paused campaign with the fixed sales objective.
	progress("Creating campaign...")
	campaignID, err := s.client.CreateCampaign(ctx)
	if err != nil {
		return failure(StageCreateCampaign, err.Error(), partial)
	}
	partial.CampaignID = campaignID

	// Step 3: paused ad set under the campaign.
	adSetID, err := s.client.CreateAdSet(ctx, campaignID)
	if err != nil {
		return failure(StageCreateAdSet, err.Error(), partial)
	}
	partial.AdSetID = adSetID

	// Step 4: creative referencing the uploaded image hash.
	progress("Assembling ad set and creative...")
	creativeID, err := s.client.CreateAdCreative(ctx, in.Creative, imageHash)
	if err != nil {
		return failure(StageCreateAdCreative, err.Error(), partial)
	}
	partial.CreativeID = creativeID

	// Step 5: the final ad. Its id is the success value.
	adID, err := s.client.CreateAd(ctx, adSetID, creativeID)
	if err != nil {
		return failure(StageCreateAd, err.Error(), partial)
	}

	progress("Campaign deployed")
	logger.Info("campaign deployed",
		"campaign_id", campaignID, "ad_set_id", adSetID, "creative_id", creativeID, "ad_id", adID)
	return Result{Succeeded: true, AdID: adID, Partial: partial}
}

// simulate performs no network calls: it walks the four named progress
// stages with fixed delays and returns the sentinel success marker.
func (s *Sequencer) simulate(ctx context.Context, progress Progress) Result {
	for i, msg := range simulationStages {
		if i > 0 {
			select {
			case <-time.After(s.simDelay):
			case <-ctx.Done():
				return failure("", ctx.Err().Error(), Partial{})
			}
		}
		progress(msg)
	}
	return Result{Succeeded: true, Simulated: true, AdID: SimulatedAdID}
}
