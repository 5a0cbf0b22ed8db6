// Package meta deploys drafted ad creatives to the Meta Ads platform.
//
// The Graph API models an ad as a chain of objects (image, campaign, ad set,
// creative, ad) that must be created in order, each referencing the previous
// one. Client wraps those five endpoints; Sequencer drives them.
package meta

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/httpx"
)

// Campaigns are always created paused with the sales objective; nothing this
// service deploys ever starts spending without a human flipping it on.
const (
	campaignObjective = "OUTCOME_SALES"
	campaignName      = "GrowifyX Automated Campaign"
	adSetName         = "GrowifyX Ad Set"
	optimizationGoal  = "OFFSITE_CONVERSIONS"
	billingEvent      = "IMPRESSIONS"
)

// Fixed broad targeting: a small country set, adult age range.
var targetCountries = []string{"IN", "US"}

const (
	targetAgeMin = 18
	targetAgeMax = 65
)

// Client is the Meta Graph API client for ad object creation.
type Client struct {
	baseURL     string
	accessToken string
	adAccountID string
	pageID      string
	destLink    string
	dailyBudget int // cents
	httpClient  httpx.Doer
}

// NewClient creates a Graph API client from configuration.
func NewClient(cfg config.MetaConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		adAccountID: cfg.AdAccountID,
		pageID:      cfg.PageID,
		destLink:    cfg.DestinationLink,
		dailyBudget: cfg.DailyBudgetCents,
		httpClient:  httpx.NewClient(cfg.Timeout()),
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(d httpx.Doer) { c.httpClient = d }

// postForm sends a form-encoded POST to a Graph API path and returns the raw
// response body. The access token travels as a form field, per the API.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	form.Set("access_token", c.accessToken)

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// idResponse is the common create-object reply.
type idResponse struct {
	ID string `json:"id"`
}

func parseID(body []byte, object string) (string, error) {
	var r idResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("parse %s response: %w", object, err)
	}
	if r.ID == "" {
		return "", fmt.Errorf("%s response missing id field: %s", object, string(body))
	}
	return r.ID, nil
}

// FetchImage downloads the creative image and verifies the bytes decode as an
// image before anything is sent to the ad platform.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create image request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := validateImage(data); err != nil {
		return nil, err
	}
	return data, nil
}

// UploadImage pushes the image bytes to the ad account's media library and
// returns the content hash the creative step references.
func (c *Client) UploadImage(ctx context.Context, imageBytes []byte) (string, error) {
	const name = "growifyx_creative"

	form := url.Values{}
	form.Set("bytes", base64.StdEncoding.EncodeToString(imageBytes))
	form.Set("name", name)

	body, err := c.postForm(ctx, "/act_"+c.adAccountID+"/adimages", form)
	if err != nil {
		return "", err
	}

	var r struct {
		Images map[string]struct {
			Hash string `json:"hash"`
		} `json:"images"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("parse adimages response: %w", err)
	}
	img, ok := r.Images[name]
	if !ok || img.Hash == "" {
		return "", fmt.Errorf("adimages response missing image hash: %s", string(body))
	}
	return img.Hash, nil
}

// CreateCampaign creates a paused sales campaign and returns its id.
func (c *Client) CreateCampaign(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("name", campaignName)
	form.Set("objective", campaignObjective)
	form.Set("status", "PAUSED")
	form.Set("special_ad_categories", "[]")

	body, err := c.postForm(ctx, "/act_"+c.adAccountID+"/campaigns", form)
	if err != nil {
		return "", err
	}
	return parseID(body, "campaign")
}

// CreateAdSet creates a paused ad set under the campaign with the fixed
// budget and targeting, and returns its id.
func (c *Client) CreateAdSet(ctx context.Context, campaignID string) (string, error) {
	targeting, err := json.Marshal(map[string]any{
		"geo_locations": map[string]any{"countries": targetCountries},
		"age_min":       targetAgeMin,
		"age_max":       targetAgeMax,
	})
	if err != nil {
		return "", fmt.Errorf("marshal targeting: %w", err)
	}

	form := url.Values{}
	form.Set("name", adSetName)
	form.Set("campaign_id", campaignID)
	form.Set("daily_budget", strconv.Itoa(c.dailyBudget))
	form.Set("billing_event", billingEvent)
	form.Set("optimization_goal", optimizationGoal)
	form.Set("targeting", string(targeting))
	form.Set("status", "PAUSED")

	body, err := c.postForm(ctx, "/act_"+c.adAccountID+"/adsets", form)
	if err != nil {
		return "", err
	}
	return parseID(body, "ad set")
}

// CreateAdCreative assembles the creative from the uploaded image hash and
// the drafted copy, and returns its id.
func (c *Client) CreateAdCreative(ctx context.Context, draft domain.AdCreativeDraft, imageHash string) (string, error) {
	storySpec, err := json.Marshal(map[string]any{
		"page_id": c.pageID,
		"link_data": map[string]any{
			"link":           c.destLink,
			"message":        draft.PrimaryText,
			"name":           draft.Headline,
			"image_hash":     imageHash,
			"call_to_action": map[string]any{"type": string(draft.CallToAction)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal story spec: %w", err)
	}

	form := url.Values{}
	form.Set("name", draft.Headline)
	form.Set("object_story_spec", string(storySpec))
	form.Set("status", "ACTIVE")

	body, err := c.postForm(ctx, "/act_"+c.adAccountID+"/adcreatives", form)
	if err != nil {
		return "", err
	}
	return parseID(body, "ad creative")
}

// CreateAd links the ad set and the creative into the final paused ad object
// and returns its id: the success value of the whole deployment.
func (c *Client) CreateAd(ctx context.Context, adSetID, creativeID string) (string, error) {
	creative, err := json.Marshal(map[string]string{"creative_id": creativeID})
	if err != nil {
		return "", fmt.Errorf("marshal creative ref: %w", err)
	}

	form := url.Values{}
	form.Set("name", campaignName)
	form.Set("adset_id", adSetID)
	form.Set("creative", string(creative))
	form.Set("status", "PAUSED")

	body, err := c.postForm(ctx, "/act_"+c.adAccountID+"/ads", form)
	if err != nil {
		return "", err
	}
	return parseID(body, "ad")
}
