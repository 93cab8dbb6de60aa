package fis

import (
	"math"
	"sort"
	"strings"

	"creator-match-workers/internal/models"
)

// Calculator computes the six-indicator authenticity score for a creator
// profile. It is stateless apart from its configuration and safe for
// concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator builds a scorer from the given configuration.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Score evaluates up to models.SampleWindow of the profile's most recent
// posts and returns the composite score, verdict, and per-indicator
// breakdown. Scoring the same profile twice yields the identical result.
func (c *Calculator) Score(profile models.CreatorProfile) models.AuthenticityResult {
	samples := profile.RecentPosts
	if len(samples) > models.SampleWindow {
		samples = samples[:models.SampleWindow]
	}

	view := c.viewVariability(samples)
	engagement := c.engagementAsymmetry(samples)
	comment := c.commentEntropy(samples)
	activity := c.activityStability(samples)
	geo := c.geographicConsistency(profile, samples)
	dup := c.duplicateContent(samples)

	w := c.cfg.Weights
	baseWeight := w.ViewVariability + w.EngagementAsymmetry + w.CommentEntropy +
		w.ActivityStability + w.DuplicateContent
	base := (w.ViewVariability*view +
		w.EngagementAsymmetry*engagement +
		w.CommentEntropy*comment +
		w.ActivityStability*activity +
		w.DuplicateContent*dup) / baseWeight

	// The geographic signal gates the base score and adds its own weighted
	// term, so off-market creators cannot score highly on volume alone.
	final := clamp(base*(geo/100.0)+w.Geographic*geo, 0, 100)

	return models.AuthenticityResult{
		Score:   final,
		Verdict: models.VerdictFor(final),
		Breakdown: map[string]float64{
			models.IndicatorViewVariability:       view,
			models.IndicatorEngagementAsymmetry:   engagement,
			models.IndicatorCommentEntropy:        comment,
			models.IndicatorActivityStability:     activity,
			models.IndicatorGeographicConsistency: geo,
			models.IndicatorDuplicateContent:      dup,
		},
	}
}

// viewVariability rewards organic spread in view counts. Bot-farmed accounts
// cluster near-identical views (low CV); wildly erratic views are also
// slightly suspect.
func (c *Calculator) viewVariability(samples []models.EngagementSample) float64 {
	var views []float64
	for _, s := range samples {
		if s.Views > 0 {
			views = append(views, float64(s.Views))
		}
	}
	if len(views) < c.cfg.ViewVariability.MinSamples {
		return c.cfg.ViewVariability.Neutral
	}
	cv := coefficientOfVariation(views)
	switch {
	case cv < 0.03:
		return 30
	case cv < 0.05:
		return 55
	case cv < 0.08:
		return 75
	case cv <= 0.50:
		return 95
	default:
		return 80
	}
}

// engagementAsymmetry scores the like/view ratio. Healthy accounts sit in the
// 2-12% band; purchased likes push the ratio high, ghost audiences push it
// low, and a near-constant per-post ratio is penalized on top.
func (c *Calculator) engagementAsymmetry(samples []models.EngagementSample) float64 {
	var ratios []float64
	for _, s := range samples {
		if s.Views > 0 {
			ratios = append(ratios, float64(s.Likes)/float64(s.Views))
		}
	}
	if len(ratios) < c.cfg.EngagementAsymmetry.MinSamples {
		return c.cfg.EngagementAsymmetry.Neutral
	}

	avg := mean(ratios)
	var score float64
	switch {
	case avg < 0.008:
		score = 25
	case avg < 0.015:
		score = 45
	case avg < 0.02:
		score = 50
	case avg <= 0.12:
		score = 90
	case avg <= 0.18:
		score = 75
	case avg <= 0.25:
		score = 55
	default:
		score = 30
	}

	if len(ratios) >= c.cfg.UniformRatioMinPosts &&
		coefficientOfVariation(ratios) < c.cfg.UniformRatioCV {
		score -= c.cfg.UniformRatioPenalty
	}
	return clamp(score, 0, 100)
}

// commentEntropy uses the comment/view ratio as a proxy for real
// conversation. Values between the documented bands fall back to neutral.
func (c *Calculator) commentEntropy(samples []models.EngagementSample) float64 {
	var ratios []float64
	for _, s := range samples {
		if s.Views > 0 {
			ratios = append(ratios, float64(s.Comments)/float64(s.Views))
		}
	}
	if len(ratios) < c.cfg.CommentEntropy.MinSamples {
		return c.cfg.CommentEntropy.Neutral
	}
	avg := mean(ratios)
	switch {
	case avg < 0.0005:
		return 35
	case avg >= 0.001 && avg <= 0.02:
		return 90
	case avg > 0.02 && avg <= 0.05:
		return 70
	case avg > 0.05:
		return 40
	default:
		return c.cfg.CommentEntropy.Neutral
	}
}

// activityStability scores the mean gap between successive posts. A steady
// weekly-ish cadence reads human; sub-12-hour bursts read automated.
func (c *Calculator) activityStability(samples []models.EngagementSample) float64 {
	var stamps []float64
	for _, s := range samples {
		if !s.Timestamp.IsZero() {
			stamps = append(stamps, float64(s.Timestamp.Unix()))
		}
	}
	if len(stamps) < c.cfg.ActivityStability.MinSamples {
		return c.cfg.ActivityStability.Neutral
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(stamps)))

	const day = 86400.0
	var gaps []float64
	for i := 0; i < len(stamps)-1; i++ {
		gaps = append(gaps, (stamps[i]-stamps[i+1])/day)
	}
	avgGap := mean(gaps)
	switch {
	case avgGap >= 1 && avgGap <= 7:
		return 90
	case avgGap > 7 && avgGap <= 14:
		return 80
	case avgGap >= 0.5 && avgGap < 1:
		return 75
	case avgGap < 0.5:
		return 40
	default:
		return 60
	}
}

// geographicConsistency checks whether the audience matches the market the
// creator appears to publish for. Creators with no audience data, or who do
// not target the configured market at all, score neutral.
func (c *Calculator) geographicConsistency(profile models.CreatorProfile, samples []models.EngagementSample) float64 {
	if len(profile.AudienceCountries) == 0 {
		return 50
	}

	total := 0.0
	for _, n := range profile.AudienceCountries {
		total += n
	}
	if total == 0 {
		return 50
	}
	localRatio := profile.AudienceCountries[c.cfg.Locale.Country] / total

	var text strings.Builder
	text.WriteString(profile.Bio)
	for _, s := range samples {
		text.WriteString("\n")
		text.WriteString(s.Caption)
	}
	targeted := c.cfg.Locale.ContainsTargetScript(text.String()) ||
		localRatio >= c.cfg.Locale.TargetAudienceRatio
	if !targeted {
		return 50
	}

	switch {
	case localRatio >= 0.70:
		return 95
	case localRatio >= 0.50:
		return 90
	case localRatio >= 0.35:
		return 80
	default:
		return 65
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// coefficientOfVariation is stddev/mean, 0 when the mean is 0.
func coefficientOfVariation(xs []float64) float64 {
	m := mean(xs)
	if m == 0 {
		return 0
	}
	return stdDev(xs) / m
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
