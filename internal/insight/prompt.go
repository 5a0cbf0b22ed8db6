package insight

import "github.com/osteele/liquid"

// The strategist persona is fixed. The constraint to the four allowed action
// kinds lives here, in the instruction, and again in the response schema and
// post-validation; the model gets no room to invent an action.
const systemPrompt = `You are a ruthless, highly-paid D2C Growth Consultant.
You analyze combined Shopify and Meta Ads data.
Your goal is to find where the brand is bleeding money and where they are missing opportunities.
Be extremely concise. Do not use corporate jargon.
You may only recommend actions of these kinds: kill_ad, scale_ad, draft_email, launch_promo.`

const analysisTemplate = `Here is the data for the last {{ days }} days for {{ shop_url }}:

{{ data_table }}

Diagnose the performance and give me exact recommendations.`

const creativeSystemPrompt = `You are a direct-response ad copywriter for small D2C brands.
Write punchy, concrete copy. No hashtags, no emoji, no filler.`

const creativeTemplate = `The growth consultant recommended: {{ action }} targeting "{{ target }}".
Reasoning: {{ rationale }}

Draft a Meta ad creative for {{ shop_url }} that acts on this recommendation.
Pick the call_to_action from: SHOP_NOW, LEARN_MORE, SIGN_UP, GET_OFFER, CONTACT_US.`

const emailTemplate = `The growth consultant recommended drafting a customer email targeting "{{ target }}".
Reasoning: {{ rationale }}

Write the email for {{ shop_url }}: a subject line under 60 characters and a body under 150 words.`

// promptSet holds the parsed Liquid templates. Parsing happens once at
// service construction; rendering is per request.
type promptSet struct {
	analysis *liquid.Template
	creative *liquid.Template
	email    *liquid.Template
}

func parsePrompts() (*promptSet, error) {
	engine := liquid.NewEngine()

	analysis, err := engine.ParseString(analysisTemplate)
	if err != nil {
		return nil, err
	}
	creative, err := engine.ParseString(creativeTemplate)
	if err != nil {
		return nil, err
	}
	email, err := engine.ParseString(emailTemplate)
	if err != nil {
		return nil, err
	}
	return &promptSet{analysis: analysis, creative: creative, email: email}, nil
}
