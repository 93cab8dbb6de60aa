package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"
)

// Role is the exclusive creator classification used throughout matching.
type Role string

const (
	RoleExpert      Role = "Expert"
	RoleTrendsetter Role = "Trendsetter"
)

// Verdict buckets an authenticity score into an operator-facing judgement.
type Verdict string

const (
	VerdictTrusted Verdict = "trusted"
	VerdictCaution Verdict = "caution"
	VerdictSuspect Verdict = "suspect"
)

// EngagementSample is one recent post. Views is zero for formats that do not
// expose a view count; indicators treat zero views as "not usable".
type EngagementSample struct {
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Timestamp time.Time `json:"timestamp"`
	Caption   string    `json:"caption"`
}

// CreatorProfile is the ingested record for one creator. RecentPosts is
// most-recent-first and bounded to SampleWindow entries at the boundary.
type CreatorProfile struct {
	Username          string             `json:"username"`
	Bio               string             `json:"bio"`
	Followers         int                `json:"followers"`
	RecentPosts       []EngagementSample `json:"recentPosts"`
	AudienceCountries map[string]float64 `json:"audienceCountries"`

	// Filled by scoring/classification; nil until computed.
	Role           *Role                `json:"role,omitempty"`
	RoleConfidence float64              `json:"roleConfidence,omitempty"`
	Authenticity   *AuthenticityResult  `json:"authenticity,omitempty"`

	Gender   string `json:"gender,omitempty"`
	AgeGroup string `json:"ageGroup,omitempty"`
}

// SampleWindow bounds RecentPosts per profile.
const SampleWindow = 12

// AuthenticityResult is the composite trust score plus the six raw sub-scores.
// Breakdown is kept for explainability; the final score cannot be re-derived
// from it without the combination weights, so both are persisted.
type AuthenticityResult struct {
	Score     float64            `json:"score"`
	Verdict   Verdict            `json:"verdict"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Sub-score keys in AuthenticityResult.Breakdown.
const (
	IndicatorViewVariability       = "view_variability"
	IndicatorEngagementAsymmetry   = "engagement_asymmetry"
	IndicatorCommentEntropy        = "comment_entropy"
	IndicatorActivityStability     = "activity_stability"
	IndicatorGeographicConsistency = "geographic_consistency"
	IndicatorDuplicateContent      = "duplicate_content"
)

// VerdictFor maps a score to its verdict using the 80/60 thresholds,
// inclusive on the upper side.
func VerdictFor(score float64) Verdict {
	switch {
	case score >= 80:
		return VerdictTrusted
	case score >= 60:
		return VerdictCaution
	default:
		return VerdictSuspect
	}
}

// Fingerprint returns a stable content hash of the scoring-relevant profile
// fields. It keys the score/classification cache: an unchanged profile hits
// the cache, any edit to bio, posts, or audience produces a new key.
func (p *CreatorProfile) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00", p.Username, p.Bio, p.Followers)
	for _, s := range p.RecentPosts {
		fmt.Fprintf(h, "%d|%d|%d|%d|%s\x00", s.Views, s.Likes, s.Comments, s.Timestamp.UnixNano(), s.Caption)
	}
	countries := make([]string, 0, len(p.AudienceCountries))
	for c := range p.AudienceCountries {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	for _, c := range countries {
		fmt.Fprintf(h, "%s=%.6f\x00", c, p.AudienceCountries[c])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AllCaptions concatenates bio and captions, the text surface both the role
// classifier and the locale signal operate on.
func (p *CreatorProfile) AllCaptions() string {
	text := p.Bio
	for _, s := range p.RecentPosts {
		text += " " + s.Caption
	}
	return text
}
