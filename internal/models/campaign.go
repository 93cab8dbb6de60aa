package models

// MarketingApproach mirrors the three promotion styles a campaign brief can
// imply. It drives the preferred-role split when explicit per-role counts are
// not requested.
type MarketingApproach string

const (
	ApproachProfessional   MarketingApproach = "professional"
	ApproachExpertOriented MarketingApproach = "expert_oriented"
	ApproachConsumer       MarketingApproach = "consumer"
)

// AgeRange is a parsed audience age window. Zero Max means open-ended.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether an age group midpoint falls inside the range.
func (r AgeRange) Contains(age int) bool {
	if age < r.Min {
		return false
	}
	return r.Max == 0 || age <= r.Max
}

// CampaignBrief is the structured form of a free-text campaign description.
// Fields are best-effort; a field the parser could not extract stays zero and
// downstream filters treat it as "no constraint".
type CampaignBrief struct {
	BrandName         string            `json:"brandName"`
	ProductType       string            `json:"productType"`
	Description       string            `json:"description"`
	TargetGender      string            `json:"targetGender,omitempty"`
	TargetAge         *AgeRange         `json:"targetAge,omitempty"`
	MarketingApproach MarketingApproach `json:"marketingApproach"`
	Keywords          []string          `json:"keywords,omitempty"`
}
