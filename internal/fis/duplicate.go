package fis

import (
	"math"
	"strings"
	"unicode"

	"creator-match-workers/internal/models"
)

// tokenize lowercases a caption and splits it on anything that is not a
// letter or digit, returning the token set.
func tokenize(caption string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(caption), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|. Two empty sets are identical by convention.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// duplicateContent scores repost/spam behavior. It starts from a 100 baseline
// and deducts for near-duplicate caption pairs, burst posting, and high mean
// caption similarity. More duplication never raises the score.
func (c *Calculator) duplicateContent(samples []models.EngagementSample) float64 {
	captioned := make([]map[string]struct{}, 0, len(samples))
	for _, s := range samples {
		if strings.TrimSpace(s.Caption) != "" {
			captioned = append(captioned, tokenize(s.Caption))
		}
	}
	if len(captioned) < c.cfg.DuplicateContent.MinSamples {
		return c.cfg.DuplicateContent.Neutral
	}

	totalPairs := 0
	dupPairs := 0
	simSum := 0.0
	for i := 0; i < len(captioned); i++ {
		for j := i + 1; j < len(captioned); j++ {
			sim := jaccard(captioned[i], captioned[j])
			simSum += sim
			totalPairs++
			if sim >= c.cfg.DuplicateJaccardThreshold {
				dupPairs++
			}
		}
	}

	score := 100.0
	dupRatio := float64(dupPairs) / float64(totalPairs)
	switch {
	case dupRatio > 0.50:
		score -= 40
	case dupRatio > 0.30:
		score -= 25
	case dupRatio > 0.10:
		score -= 10
	}

	if burstRatio(samples, c.cfg.DuplicateBurstWindow) > 0.30 {
		score -= 20
	}
	if simSum/float64(totalPairs) > 0.50 {
		score -= 15
	}
	return clamp(score, 0, 100)
}

// burstRatio is the fraction of post pairs published within window minutes of
// each other. Samples without timestamps are ignored.
func burstRatio(samples []models.EngagementSample, window float64) float64 {
	var stamps []float64
	for _, s := range samples {
		if !s.Timestamp.IsZero() {
			stamps = append(stamps, float64(s.Timestamp.Unix())/60.0)
		}
	}
	if len(stamps) < 2 {
		return 0
	}
	total := 0
	burst := 0
	for i := 0; i < len(stamps); i++ {
		for j := i + 1; j < len(stamps); j++ {
			total++
			if math.Abs(stamps[i]-stamps[j]) <= window {
				burst++
			}
		}
	}
	return float64(burst) / float64(total)
}
