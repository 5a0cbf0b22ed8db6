package api

import (
	"errors"
	"net/http"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/gemini"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/insight"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/httputil"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/shopify"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/store"
)

// Error codes returned in the JSON envelope. Each maps one failure category:
// missing credentials are 503 (deploy/configure, then retry), upstream faults
// and shape violations are 502 (the platform is fine, a dependency is not),
// and absent data is a normal 200 "waiting" payload, never an error.
const (
	codeConfigurationMissing = "configuration_missing"
	codeRemoteCallFailure    = "remote_call_failure"
	codeSchemaMismatch       = "schema_mismatch"
)

// waitingResponse is the empty-store dashboard state: the UI shows an
// onboarding hint instead of an error page.
type waitingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeWaiting(w http.ResponseWriter) {
	httputil.OK(w, waitingResponse{
		Status:  "waiting_for_data",
		Message: "No orders or ad spend ingested yet. Connect your store and sync to get started.",
	})
}

// writeUpstreamError translates a service-layer error into the taxonomy.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insight.ErrNoData):
		writeWaiting(w)
	case errors.Is(err, gemini.ErrSchemaMismatch):
		httputil.BadGateway(w, codeSchemaMismatch, err.Error())
	case errors.Is(err, store.ErrNotFound):
		httputil.NotFound(w, err.Error())
	case errors.Is(err, shopify.ErrSyncInProgress):
		httputil.Error(w, http.StatusConflict, "sync_in_progress", err.Error())
	default:
		httputil.BadGateway(w, codeRemoteCallFailure, err.Error())
	}
}
