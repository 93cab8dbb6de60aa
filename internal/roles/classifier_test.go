package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"creator-match-workers/internal/models"
)

func TestClassifyEmptyProfile(t *testing.T) {
	c := NewClassifier()
	got := c.Classify(models.CreatorProfile{Username: "blank"})

	assert.Equal(t, models.RoleTrendsetter, got.Role)
	assert.Equal(t, 0.4, got.Confidence)
	assert.Equal(t, [2]float64{0.6, 0.4}, got.RoleVector)
	assert.Empty(t, got.ExpertKeywords)
	assert.Empty(t, got.TrendKeywords)
}

func TestClassifyExpert(t *testing.T) {
	c := NewClassifier()
	got := c.Classify(models.CreatorProfile{
		Username: "salon_director",
		Bio:      "강남 살롱 원장, 시술 예약은 DM",
	})

	// 살롱(2.0) + 원장(3.0) + 시술(2.0) + 예약(1.0) = 8.0 expert, 0 trend.
	assert.Equal(t, models.RoleExpert, got.Role)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, [2]float64{1.0, 0.0}, got.RoleVector)
	assert.ElementsMatch(t, []string{"원장", "살롱", "시술", "예약"}, got.ExpertKeywords)
}

func TestClassifyMixedSignal(t *testing.T) {
	c := NewClassifier()
	got := c.Classify(models.CreatorProfile{
		Username: "hybrid",
		Bio:      "원장",
		RecentPosts: []models.EngagementSample{
			{Caption: "데일리룩 추천 꿀팁"},
		},
	})

	// 원장 weighs 3.0 against three unweighted trend terms: a dead tie goes
	// to Trendsetter.
	assert.Equal(t, models.RoleTrendsetter, got.Role)
	assert.Equal(t, 0.5, got.Confidence)
	assert.Equal(t, [2]float64{0.5, 0.5}, got.RoleVector)
}

func TestClassifyWeightedTrendsetter(t *testing.T) {
	c := NewClassifier()
	got := c.Classify(models.CreatorProfile{
		Username: "creator_j",
		Bio:      "뷰티 크리에이터, 협찬 문의 환영",
		RecentPosts: []models.EngagementSample{
			{Caption: "신상 리뷰 & 솔직후기"},
			{Caption: "데일리 메이크업 루틴"},
		},
	})

	assert.Equal(t, models.RoleTrendsetter, got.Role)
	assert.Greater(t, got.Confidence, 0.5)
	assert.Contains(t, got.TrendKeywords, "크리에이터")
	assert.Contains(t, got.TrendKeywords, "협찬")
}

func TestClassifyIdempotent(t *testing.T) {
	c := NewClassifier()
	profile := models.CreatorProfile{
		Username: "stable",
		Bio:      "미용사 자격증 보유, 홈케어 꿀팁 공유",
	}

	first := c.Classify(profile)
	second := c.Classify(profile)
	assert.Equal(t, first, second)
}

func TestStrategyVectors(t *testing.T) {
	expert := StrategyFor(models.RoleExpert).SignalVector(0.8)
	assert.InDelta(t, 0.8, expert[0], 1e-9)
	assert.InDelta(t, 0.2, expert[1], 1e-9)

	trend := StrategyFor(models.RoleTrendsetter).SignalVector(0.8)
	assert.InDelta(t, 0.2, trend[0], 1e-9)
	assert.InDelta(t, 0.8, trend[1], 1e-9)

	assert.Equal(t, models.RoleTrendsetter, StrategyFor(models.Role("unknown")).Role())
}

func TestClassifyTrendsetterSelfLabel(t *testing.T) {
	c := NewClassifier()
	result := c.Classify(models.CreatorProfile{
		Username: "trend_lead",
		Bio:      "뷰티 트렌드세터",
	})

	assert.Equal(t, models.RoleTrendsetter, result.Role)
	assert.Contains(t, result.TrendKeywords, "트렌드세터")
	assert.Greater(t, result.Confidence, 0.5)
}
