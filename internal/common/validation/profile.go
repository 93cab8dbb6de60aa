package validation

import (
	"fmt"

	"creator-match-workers/internal/models"
)

// ValidateProfile rejects malformed creator profiles at the boundary so the
// scoring core can assume validated input. Missing optional data is fine;
// contradictory data (negative counts, audience fractions that cannot be
// fractions) is not.
func ValidateProfile(p *models.CreatorProfile) *ValidationResult {
	errors := []ValidationError{}

	if p.Username == "" {
		errors = append(errors, ValidationError{
			Field:   "username",
			Message: "required field missing",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}
	if p.Followers < 0 {
		errors = append(errors, ValidationError{
			Field:   "followers",
			Message: "count cannot be negative",
			Code:    "NEGATIVE_COUNT",
		})
	}

	for i, s := range p.RecentPosts {
		if s.Views < 0 || s.Likes < 0 || s.Comments < 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("recentPosts[%d]", i),
				Message: "engagement counts cannot be negative",
				Code:    "NEGATIVE_COUNT",
			})
		}
	}

	for country, fraction := range p.AudienceCountries {
		if fraction < 0 || fraction > 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("audienceCountries.%s", country),
				Message: "audience fraction must be within [0,1]",
				Code:    "FRACTION_OUT_OF_RANGE",
			})
		}
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// ValidateSimilarity rejects similarity values outside [-1,1] before they
// enter the ranker.
func ValidateSimilarity(similarity float64) *ValidationResult {
	if similarity < -1 || similarity > 1 {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "similarity",
				Message: fmt.Sprintf("similarity %f outside [-1,1]", similarity),
				Code:    "SIMILARITY_OUT_OF_RANGE",
			}},
		}
	}
	return &ValidationResult{Valid: true}
}
