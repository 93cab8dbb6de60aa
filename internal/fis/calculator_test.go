package fis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-match-workers/internal/models"
)

// healthyProfile builds a 10-post profile hitting the organic band of every
// indicator: mid-range view CV, 6% like ratio (uniform, so the automation
// penalty fires), 1% comment ratio, 3-day cadence, KR-dominant audience,
// distinct captions.
func healthyProfile() models.CreatorProfile {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]models.EngagementSample, 10)
	for i := range posts {
		views := 8000
		if i%2 == 0 {
			views = 12000
		}
		posts[i] = models.EngagementSample{
			Views:     views,
			Likes:     int(float64(views) * 0.06),
			Comments:  int(float64(views) * 0.01),
			Timestamp: base.Add(-time.Duration(i) * 72 * time.Hour),
			Caption:   fmt.Sprintf("caption%d topic%d detail%d", i, i*7, i*13),
		}
	}
	return models.CreatorProfile{
		Username:          "glow_holic",
		Bio:               "뷰티 크리에이터, 데일리 메이크업",
		Followers:         52000,
		RecentPosts:       posts,
		AudienceCountries: map[string]float64{"KR": 0.80, "US": 0.15, "JP": 0.05},
	}
}

func TestScoreHealthyCreator(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	result := calc.Score(healthyProfile())

	require.NotNil(t, result.Breakdown)
	assert.Equal(t, 95.0, result.Breakdown[models.IndicatorViewVariability])
	assert.Equal(t, 75.0, result.Breakdown[models.IndicatorEngagementAsymmetry])
	assert.Equal(t, 90.0, result.Breakdown[models.IndicatorCommentEntropy])
	assert.Equal(t, 90.0, result.Breakdown[models.IndicatorActivityStability])
	assert.Equal(t, 95.0, result.Breakdown[models.IndicatorGeographicConsistency])
	assert.Equal(t, 100.0, result.Breakdown[models.IndicatorDuplicateContent])

	assert.InDelta(t, 98.35, result.Score, 0.01)
	assert.Equal(t, models.VerdictTrusted, result.Verdict)
}

func TestScoreEmptyProfile(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	result := calc.Score(models.CreatorProfile{Username: "ghost"})

	for _, key := range []string{
		models.IndicatorViewVariability,
		models.IndicatorEngagementAsymmetry,
		models.IndicatorCommentEntropy,
		models.IndicatorActivityStability,
		models.IndicatorGeographicConsistency,
		models.IndicatorDuplicateContent,
	} {
		assert.Equal(t, 50.0, result.Breakdown[key], key)
	}

	// All-neutral indicators still collapse to a Suspect aggregate: the
	// geographic gate halves the base and the additive term only restores
	// 7.5 points.
	assert.InDelta(t, 32.5, result.Score, 0.0001)
	assert.Equal(t, models.VerdictSuspect, result.Verdict)
}

func TestScoreIdempotent(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	profile := healthyProfile()

	first := calc.Score(profile)
	second := calc.Score(profile)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, first.Breakdown, second.Breakdown)
}

func TestScoreBounds(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	profiles := []models.CreatorProfile{
		{Username: "a"},
		healthyProfile(),
		{
			Username: "botfarm",
			Bio:      "팔로우 맞팔 이벤트",
			RecentPosts: []models.EngagementSample{
				{Views: 10000, Likes: 5000, Comments: 1000, Timestamp: now, Caption: "이벤트 참여 맞팔 환영"},
				{Views: 10000, Likes: 5000, Comments: 1000, Timestamp: now.Add(2 * time.Minute), Caption: "이벤트 참여 맞팔 환영"},
				{Views: 10001, Likes: 5000, Comments: 1000, Timestamp: now.Add(4 * time.Minute), Caption: "이벤트 참여 맞팔 환영"},
				{Views: 10000, Likes: 5001, Comments: 1000, Timestamp: now.Add(6 * time.Minute), Caption: "이벤트 참여 맞팔 환영"},
			},
			AudienceCountries: map[string]float64{"KR": 0.95, "US": 0.05},
		},
	}
	for _, p := range profiles {
		result := calc.Score(p)
		assert.GreaterOrEqual(t, result.Score, 0.0, p.Username)
		assert.LessOrEqual(t, result.Score, 100.0, p.Username)
		assert.Len(t, result.Breakdown, 6, p.Username)
	}
}

func TestViewVariabilityBands(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	tests := []struct {
		name  string
		views []int
		want  float64
	}{
		{"near-uniform", []int{10000, 10100, 10050, 9950}, 30},
		{"organic spread", []int{8000, 12000, 9000, 11000}, 95},
		{"erratic spikes", []int{1000, 50000, 800, 60000}, 80},
		{"single usable sample", []int{5000, 0, 0}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]models.EngagementSample, len(tt.views))
			for i, v := range tt.views {
				samples[i] = models.EngagementSample{Views: v}
			}
			assert.Equal(t, tt.want, calc.viewVariability(samples))
		})
	}
}

func TestEngagementAsymmetryGapBand(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// Average ratio 0.017 falls between the 0.015 and 0.02 thresholds; the
	// band is unspecified there so the indicator stays neutral. Ratios vary
	// enough to dodge the uniformity penalty.
	samples := []models.EngagementSample{
		{Views: 10000, Likes: 120},
		{Views: 10000, Likes: 220},
		{Views: 10000, Likes: 170},
	}
	assert.Equal(t, 50.0, calc.engagementAsymmetry(samples))
}

func TestEngagementUniformRatioPenalty(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// Identical 6% ratio on every post: band 90 minus the 15-point
	// automation penalty.
	samples := []models.EngagementSample{
		{Views: 10000, Likes: 600},
		{Views: 20000, Likes: 1200},
		{Views: 15000, Likes: 900},
	}
	assert.Equal(t, 75.0, calc.engagementAsymmetry(samples))

	// Two samples never trigger the penalty even with a constant ratio.
	assert.Equal(t, 90.0, calc.engagementAsymmetry(samples[:2]))
}

func TestActivityStabilityBands(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{"weekly-ish", 72 * time.Hour, 90},
		{"biweekly", 10 * 24 * time.Hour, 80},
		{"daily-ish", 18 * time.Hour, 75},
		{"burst posting", 6 * time.Hour, 40},
		{"dormant", 20 * 24 * time.Hour, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]models.EngagementSample, 5)
			for i := range samples {
				samples[i] = models.EngagementSample{Timestamp: base.Add(-time.Duration(i) * tt.gap)}
			}
			assert.Equal(t, tt.want, calc.activityStability(samples))
		})
	}
}

func TestGeographicConsistency(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	tests := []struct {
		name    string
		profile models.CreatorProfile
		want    float64
	}{
		{
			name: "korean content dominant KR audience",
			profile: models.CreatorProfile{
				Bio:               "서울 미용실 원장",
				AudienceCountries: map[string]float64{"KR": 0.75, "JP": 0.25},
			},
			want: 95,
		},
		{
			name: "korean content thin KR audience",
			profile: models.CreatorProfile{
				Bio:               "뷰티 리뷰",
				AudienceCountries: map[string]float64{"KR": 0.20, "US": 0.80},
			},
			want: 65,
		},
		{
			name: "no korean signal at all",
			profile: models.CreatorProfile{
				Bio:               "beauty and lifestyle",
				AudienceCountries: map[string]float64{"US": 0.70, "GB": 0.30},
			},
			want: 50,
		},
		{
			name: "majority KR audience without korean text",
			profile: models.CreatorProfile{
				Bio:               "daily makeup looks",
				AudienceCountries: map[string]float64{"KR": 0.60, "US": 0.40},
			},
			want: 90,
		},
		{
			name:    "no audience data",
			profile: models.CreatorProfile{Bio: "뷰티"},
			want:    50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.geographicConsistency(tt.profile, tt.profile.RecentPosts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerdictThresholds(t *testing.T) {
	assert.Equal(t, models.VerdictTrusted, models.VerdictFor(80))
	assert.Equal(t, models.VerdictCaution, models.VerdictFor(79.999))
	assert.Equal(t, models.VerdictCaution, models.VerdictFor(60))
	assert.Equal(t, models.VerdictSuspect, models.VerdictFor(59.999))
}
