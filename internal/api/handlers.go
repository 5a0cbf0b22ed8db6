// Package api exposes the dashboard over HTTP: auth, ingestion, metrics,
// strategist insights, and campaign deployment.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/cache"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/domain"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/insight"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/meta"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/metrics"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/httputil"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/logger"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/session"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/store"
)

// Syncer pulls a shop's latest orders into the store. Satisfied by
// *shopify.Ingestor.
type Syncer interface {
	Sync(ctx context.Context, shop *domain.Shop) (int, error)
}

// Handlers carries the wired services behind the HTTP surface.
type Handlers struct {
	shops     store.ShopStore
	orders    store.OrderStore
	adSpend   store.AdSpendStore
	sessions  *session.Manager
	insights  *insight.Service
	syncer    Syncer
	sequencer *meta.Sequencer
	memo      *cache.Dashboard // nil when Redis is not configured
	startTime time.Time
}

// NewHandlers wires the handler set.
func NewHandlers(
	shops store.ShopStore,
	orders store.OrderStore,
	adSpend store.AdSpendStore,
	sessions *session.Manager,
	insights *insight.Service,
	syncer Syncer,
	sequencer *meta.Sequencer,
	memo *cache.Dashboard,
) *Handlers {
	return &Handlers{
		shops:     shops,
		orders:    orders,
		adSpend:   adSpend,
		sessions:  sessions,
		insights:  insights,
		syncer:    syncer,
		sequencer: sequencer,
		memo:      memo,
		startTime: time.Now(),
	}
}

// HealthCheck reports liveness plus which integrations are configured.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status":         "healthy",
		"uptime":         time.Since(h.startTime).Round(time.Second).String(),
		"inference":      h.insights.Configured(),
		"meta_live_mode": h.sequencer.Live(),
		"dashboard_memo": h.memo != nil,
	})
}

type registerRequest struct {
	ShopURL     string `json:"shop_url"`
	AccessToken string `json:"access_token"`
}

// Register stores the shop's credentials, opens a session, and runs the first
// ingestion inline so the dashboard has data on the very next request.
//
//	POST /auth/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ShopURL == "" || req.AccessToken == "" {
		httputil.BadRequest(w, "shop_url and access_token are required")
		return
	}

	shop := &domain.Shop{ShopURL: req.ShopURL, AccessToken: req.AccessToken, CreatedAt: time.Now()}
	if err := h.shops.UpsertShop(r.Context(), shop); err != nil {
		httputil.InternalError(w, err)
		return
	}

	sess, err := h.sessions.Create(shop)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	h.sessions.SetCookie(w, sess)

	ingested := 0
	if n, err := h.syncer.Sync(r.Context(), shop); err != nil {
		// Registration stands even if the first sync fails; the user can
		// re-run it from the dashboard.
		logger.Warn("initial sync failed", "shop_url", shop.ShopURL, "error", err.Error())
	} else {
		ingested = n
	}

	httputil.Created(w, map[string]any{
		"shop_url":        shop.ShopURL,
		"orders_ingested": ingested,
	})
}

type loginRequest struct {
	ShopURL string `json:"shop_url"`
}

// Login opens a session for an already-registered shop.
//
//	POST /auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ShopURL == "" {
		httputil.BadRequest(w, "shop_url is required")
		return
	}

	shop, err := h.shops.GetShop(r.Context(), req.ShopURL)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	sess, err := h.sessions.Create(shop)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	h.sessions.SetCookie(w, sess)
	httputil.OK(w, map[string]string{"shop_url": shop.ShopURL})
}

// Logout ends the session; insights cached on it are discarded with it.
//
//	POST /auth/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.sessions.FromRequest(r); ok {
		h.sessions.Delete(sess.Token)
	}
	h.sessions.ClearCookie(w)
	httputil.OK(w, map[string]string{"status": "logged_out"})
}

// dashboardResponse is the aggregated series plus headline KPIs.
type dashboardResponse struct {
	Status  string                `json:"status"`
	ShopURL string                `json:"shop_url"`
	Rows    []domain.DailyMetric  `json:"rows"`
	Summary domain.MetricsSummary `json:"summary"`
}

// loadDashboard computes (or recalls) the aggregated series for the shop.
func (h *Handlers) loadDashboard(ctx context.Context, shopURL string, window int) (*cache.Payload, error) {
	if h.memo != nil {
		if p, ok, err := h.memo.Get(ctx, shopURL, window); err == nil && ok {
			return p, nil
		}
	}

	orders, err := h.orders.ListOrders(ctx, shopURL)
	if err != nil {
		return nil, err
	}
	spend, err := h.adSpend.ListAdSpend(ctx)
	if err != nil {
		return nil, err
	}

	rows := metrics.Window(metrics.Aggregate(orders, spend), window)
	p := &cache.Payload{Rows: rows, Summary: metrics.Summarize(rows)}

	if h.memo != nil && len(rows) > 0 {
		if err := h.memo.Set(ctx, shopURL, window, p); err != nil {
			logger.Warn("dashboard memo write failed", "shop_url", shopURL, "error", err.Error())
		}
	}
	return p, nil
}

// Dashboard returns the joined daily sales/spend/ROAS series. With no
// ingested data it returns the waiting state, not an error.
//
//	GET /api/dashboard?window=30
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	window := 0 // full history
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.BadRequest(w, "window must be a non-negative integer")
			return
		}
		window = n
	}

	p, err := h.loadDashboard(r.Context(), sess.ShopURL, window)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if len(p.Rows) == 0 {
		writeWaiting(w)
		return
	}
	httputil.OK(w, dashboardResponse{
		Status:  "ok",
		ShopURL: sess.ShopURL,
		Rows:    p.Rows,
		Summary: p.Summary,
	})
}

// Ingest re-pulls the shop's orders on demand.
//
//	POST /api/ingest
func (h *Handlers) Ingest(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	shop := &domain.Shop{ShopURL: sess.ShopURL, AccessToken: sess.AccessToken}

	n, err := h.syncer.Sync(r.Context(), shop)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"orders_ingested": n})
}

// Analyze runs the strategist over the most recent data window and caches the
// result on the session.
//
//	POST /api/insights
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if !h.insights.Configured() {
		httputil.ServiceUnavailable(w, codeConfigurationMissing, "inference API key is not configured")
		return
	}

	p, err := h.loadDashboard(r.Context(), sess.ShopURL, 0)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	resp, err := h.insights.Analyze(r.Context(), sess.ShopURL, p.Rows)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	sess.StoreInsights(resp)
	httputil.OK(w, resp)
}

// Insights returns the session's cached strategist response.
//
//	GET /api/insights
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	resp := sess.Insights()
	if resp == nil {
		httputil.NotFound(w, "no analysis has been run this session")
		return
	}
	httputil.OK(w, resp)
}

type draftRequest struct {
	Action domain.RecommendedAction `json:"action"`
}

// Draft turns one recommendation into deployable content: an email draft for
// draft_email actions, an ad creative for everything else.
//
//	POST /api/insights/draft
func (h *Handlers) Draft(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req draftRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if !req.Action.ActionType.Valid() {
		httputil.BadRequest(w, "action_type "+string(req.Action.ActionType)+" is not supported")
		return
	}
	if !h.insights.Configured() {
		httputil.ServiceUnavailable(w, codeConfigurationMissing, "inference API key is not configured")
		return
	}

	if req.Action.ActionType == domain.ActionDraftEmail {
		draft, err := h.insights.DraftEmail(r.Context(), sess.ShopURL, req.Action)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		httputil.OK(w, map[string]any{"email": draft})
		return
	}

	draft, err := h.insights.DraftCreative(r.Context(), sess.ShopURL, req.Action)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"creative": draft})
}

// deployResponse pairs the sequencer outcome with the progress feed the UI
// shows while the run is in flight.
type deployResponse struct {
	meta.Result
	Progress []string `json:"progress"`
}

// Deploy runs the five-step campaign deployment sequence (or its simulation)
// and returns the discriminated result. Deployment failures are reported in
// the 200 body: the HTTP layer succeeded, the sequence did not.
//
//	POST /api/campaigns/deploy
func (h *Handlers) Deploy(w http.ResponseWriter, r *http.Request) {
	var in meta.Input
	if !httputil.Decode(w, r, &in) {
		return
	}

	var progress []string
	res := h.sequencer.Deploy(r.Context(), in, func(msg string) {
		progress = append(progress, msg)
	})
	httputil.OK(w, deployResponse{Result: res, Progress: progress})
}
