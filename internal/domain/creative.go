package domain

// CallToAction enumerates the Meta ad CTA buttons the deployment flow supports.
type CallToAction string

const (
	CTAShopNow   CallToAction = "SHOP_NOW"
	CTALearnMore CallToAction = "LEARN_MORE"
	CTASignUp    CallToAction = "SIGN_UP"
	CTAGetOffer  CallToAction = "GET_OFFER"
	CTAContactUs CallToAction = "CONTACT_US"
)

// Valid reports whether c is a supported call-to-action.
func (c CallToAction) Valid() bool {
	switch c {
	case CTAShopNow, CTALearnMore, CTASignUp, CTAGetOffer, CTAContactUs:
		return true
	}
	return false
}

// AdCreativeDraft is a drafted ad ready for deployment. Produced on demand per
// recommendation and never persisted.
type AdCreativeDraft struct {
	Headline         string       `json:"headline"`
	PrimaryText      string       `json:"primary_text"`
	CallToAction     CallToAction `json:"call_to_action"`
	ImageDescription string       `json:"image_description"`
}

// EmailDraft is a drafted customer email for a draft_email recommendation.
// Like the ad draft it lives only in the responding HTTP payload.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
