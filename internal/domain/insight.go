package domain

// ActionKind enumerates the only actions the strategist is allowed to
// recommend. Anything else coming back from the model is a schema violation.
type ActionKind string

const (
	ActionKillAd      ActionKind = "kill_ad"
	ActionScaleAd     ActionKind = "scale_ad"
	ActionDraftEmail  ActionKind = "draft_email"
	ActionLaunchPromo ActionKind = "launch_promo"
)

// AllActionKinds lists every permitted action kind, in the order they are
// described to the model.
var AllActionKinds = []ActionKind{ActionKillAd, ActionScaleAd, ActionDraftEmail, ActionLaunchPromo}

// Valid reports whether k is one of the permitted action kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionKillAd, ActionScaleAd, ActionDraftEmail, ActionLaunchPromo:
		return true
	}
	return false
}

// RecommendedAction is a single strategist recommendation.
type RecommendedAction struct {
	ActionType      ActionKind `json:"action_type"`
	ConfidenceScore int        `json:"confidence_score"`
	Rationale       string     `json:"rationale"`
	TargetEntity    string     `json:"target_entity"`
}

// InsightResponse is the strategist's full answer for a 7-day data window.
// It is session-scoped and ephemeral: discarded on logout or process restart.
type InsightResponse struct {
	Summary           string              `json:"summary"`
	PrimaryBottleneck string              `json:"primary_bottleneck"`
	Recommendations   []RecommendedAction `json:"recommendations"`
}
