package parsecampaignbrief

import "creator-match-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"description"},
		Properties: map[string]validation.Property{
			"brandName": {
				Type:        "string",
				Description: "Brand running the campaign",
				MaxLength:   intPtr(120),
			},
			"productType": {
				Type:        "string",
				Description: "Explicit product category, overrides the parsed one",
				MaxLength:   intPtr(60),
			},
			"description": {
				Type:        "string",
				Description: "Free-text campaign brief",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(4000),
			},
		},
		// Jobs carry other process variables alongside the brief fields.
		AdditionalProperties: true,
	}
}

func intPtr(i int) *int {
	return &i
}
