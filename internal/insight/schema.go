package insight

import "github.com/animesh7kgp-pixel/growifyx-mvp/internal/gemini"

// insightSchema declares the exact InsightResponse shape the model must
// return. The enum on action_type mirrors domain.AllActionKinds.
var insightSchema = &gemini.Schema{
	Type: "OBJECT",
	Properties: map[string]*gemini.Schema{
		"summary": {
			Type:        "STRING",
			Description: "A brutal, honest 2-sentence summary of the last 7 days of performance.",
		},
		"primary_bottleneck": {
			Type:        "STRING",
			Description: "The biggest point of friction (e.g., 'High Ad Spend', 'Low Sales').",
		},
		"recommendations": {
			Type:        "ARRAY",
			Description: "List of 1-3 specific actions the user should take right now.",
			Items: &gemini.Schema{
				Type: "OBJECT",
				Properties: map[string]*gemini.Schema{
					"action_type": {
						Type:        "STRING",
						Enum:        []string{"kill_ad", "scale_ad", "draft_email", "launch_promo"},
						Description: "The specific type of action the user should take.",
					},
					"confidence_score": {
						Type:        "INTEGER",
						Description: "Confidence score from 1-100 on how effective this action will be.",
					},
					"rationale": {
						Type:        "STRING",
						Description: "One sentence explaining WHY this action is recommended.",
					},
					"target_entity": {
						Type:        "STRING",
						Description: "The ID or name of the ad/product this action applies to.",
					},
				},
				Required: []string{"action_type", "confidence_score", "rationale", "target_entity"},
			},
		},
	},
	Required: []string{"summary", "primary_bottleneck", "recommendations"},
}

// creativeSchema declares the AdCreativeDraft shape.
var creativeSchema = &gemini.Schema{
	Type: "OBJECT",
	Properties: map[string]*gemini.Schema{
		"headline": {
			Type:        "STRING",
			Description: "Ad headline, under 40 characters.",
		},
		"primary_text": {
			Type:        "STRING",
			Description: "Primary ad text, 1-3 short sentences.",
		},
		"call_to_action": {
			Type: "STRING",
			Enum: []string{"SHOP_NOW", "LEARN_MORE", "SIGN_UP", "GET_OFFER", "CONTACT_US"},
		},
		"image_description": {
			Type:        "STRING",
			Description: "One sentence describing the product image to use.",
		},
	},
	Required: []string{"headline", "primary_text", "call_to_action", "image_description"},
}

// emailSchema declares the EmailDraft shape.
var emailSchema = &gemini.Schema{
	Type: "OBJECT",
	Properties: map[string]*gemini.Schema{
		"subject": {Type: "STRING", Description: "Email subject line, under 60 characters."},
		"body":    {Type: "STRING", Description: "Email body, under 150 words, plain text."},
	},
	Required: []string{"subject", "body"},
}
