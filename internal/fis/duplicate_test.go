package fis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"creator-match-workers/internal/models"
)

func TestTokenize(t *testing.T) {
	set := tokenize("New Spring Look! #makeup #데일리 (part 2)")
	want := []string{"new", "spring", "look", "makeup", "데일리", "part", "2"}
	assert.Len(t, set, len(want))
	for _, tok := range want {
		_, ok := set[tok]
		assert.True(t, ok, tok)
	}
}

func TestJaccard(t *testing.T) {
	a := tokenize("spring makeup tutorial")
	b := tokenize("spring makeup haul")
	assert.InDelta(t, 0.5, jaccard(a, b), 0.0001)
	assert.Equal(t, 1.0, jaccard(a, a))
	assert.Equal(t, 0.0, jaccard(a, tokenize("완전 다른 내용")))
}

// captionProfile spreads posts days apart so only caption similarity drives
// the sub-score.
func captionSamples(captions []string) []models.EngagementSample {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	samples := make([]models.EngagementSample, len(captions))
	for i, c := range captions {
		samples[i] = models.EngagementSample{
			Caption:   c,
			Timestamp: base.Add(-time.Duration(i) * 48 * time.Hour),
		}
	}
	return samples
}

func TestDuplicateContentMonotonic(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// Six captions, an increasing number of which repeat the same text.
	prev := 101.0
	for dupes := 0; dupes <= 6; dupes++ {
		captions := make([]string, 6)
		for i := range captions {
			if i < dupes {
				captions[i] = "오늘의 데일리 메이크업 루틴 공개"
			} else {
				captions[i] = fmt.Sprintf("unique%d post%d 내용%d", i, i*3, i*11)
			}
		}
		score := calc.duplicateContent(captionSamples(captions))
		assert.LessOrEqual(t, score, prev, "dupes=%d", dupes)
		assert.GreaterOrEqual(t, score, 0.0)
		prev = score
	}
}

func TestDuplicateContentCleanProfile(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	score := calc.duplicateContent(captionSamples([]string{
		"봄맞이 신상 언박싱",
		"살롱 시술 후기",
		"weekend vlog highlights",
		"new palette first try",
	}))
	assert.Equal(t, 100.0, score)
}

func TestDuplicateContentBurstPenalty(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Distinct captions but every post landed within a five-minute window:
	// only the burst deduction applies.
	samples := []models.EngagementSample{
		{Caption: "first unique caption", Timestamp: base},
		{Caption: "second different text", Timestamp: base.Add(2 * time.Minute)},
		{Caption: "third apart content", Timestamp: base.Add(4 * time.Minute)},
	}
	assert.Equal(t, 80.0, calc.duplicateContent(samples))
}

func TestDuplicateContentInsufficientCaptions(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	assert.Equal(t, 50.0, calc.duplicateContent(nil))
	assert.Equal(t, 50.0, calc.duplicateContent(captionSamples([]string{"only one"})))
	// Whitespace-only captions are not usable.
	assert.Equal(t, 50.0, calc.duplicateContent(captionSamples([]string{"  ", "\t", "real one"})))
}
