package roles

import (
	"strings"

	"creator-match-workers/internal/models"
)

// Classification is the full classifier output. RoleVector is the
// strategy-ordered (expert, trendsetter) affinity pair; the matched keyword
// lists are kept for explainability.
type Classification struct {
	Role           models.Role `json:"role"`
	Confidence     float64     `json:"confidence"`
	RoleVector     [2]float64  `json:"roleVector"`
	ExpertKeywords []string    `json:"expertKeywords"`
	TrendKeywords  []string    `json:"trendKeywords"`
}

// Classifier labels creators as Expert or Trendsetter by weighted keyword
// counting over bio plus captions. It is deliberately linear: a marketing
// user must be able to see exactly which terms produced a label.
type Classifier struct {
	expert Vocabulary
	trend  Vocabulary
}

// NewClassifier builds a classifier with the default Korean beauty-market
// vocabularies.
func NewClassifier() *Classifier {
	return &Classifier{
		expert: DefaultExpertVocabulary(),
		trend:  DefaultTrendsetterVocabulary(),
	}
}

// NewClassifierWithVocabularies builds a classifier over custom keyword bags.
func NewClassifierWithVocabularies(expert, trend Vocabulary) *Classifier {
	return &Classifier{expert: expert, trend: trend}
}

// Classify scores the profile's text against both vocabularies. With no
// keyword signal at all the classifier leans Trendsetter at confidence 0.4,
// since the visual analysis backing that category tolerates sparse text.
// Classification is idempotent for an unchanged profile.
func (c *Classifier) Classify(profile models.CreatorProfile) Classification {
	text := profile.AllCaptions()

	expertScore, expertFound := scoreVocabulary(text, c.expert)
	trendScore, trendFound := scoreVocabulary(text, c.trend)

	total := expertScore + trendScore
	var role models.Role
	var confidence float64
	if total == 0 {
		role = models.RoleTrendsetter
		confidence = 0.4
	} else {
		expertRatio := expertScore / total
		if expertRatio > 0.5 {
			role = models.RoleExpert
			confidence = expertRatio
		} else {
			role = models.RoleTrendsetter
			confidence = 1 - expertRatio
		}
	}

	return Classification{
		Role:           role,
		Confidence:     confidence,
		RoleVector:     StrategyFor(role).SignalVector(confidence),
		ExpertKeywords: expertFound,
		TrendKeywords:  trendFound,
	}
}

func scoreVocabulary(text string, vocab Vocabulary) (float64, []string) {
	score := 0.0
	var found []string
	for _, kw := range vocab.Keywords {
		if count := strings.Count(text, kw); count > 0 {
			score += float64(count) * vocab.weight(kw)
			found = append(found, kw)
		}
	}
	return score, found
}
