package fis

// IndicatorWeights are the combination weights for the composite score. The
// five base indicators are combined as a weighted mean; Geographic is applied
// afterwards as a multiplicative gate plus an additive term, so its weight is
// excluded from the base normalization.
type IndicatorWeights struct {
	ViewVariability     float64
	EngagementAsymmetry float64
	CommentEntropy      float64
	ActivityStability   float64
	DuplicateContent    float64
	Geographic          float64
}

// IndicatorConfig keeps every tunable of one indicator in one place so
// thresholds can be tested and tuned without touching the combination formula.
type IndicatorConfig struct {
	// Neutral is returned when the indicator has fewer than MinSamples
	// usable samples.
	Neutral    float64
	MinSamples int
}

// Config is the full scorer configuration.
type Config struct {
	Weights IndicatorWeights

	ViewVariability     IndicatorConfig
	EngagementAsymmetry IndicatorConfig
	CommentEntropy      IndicatorConfig
	ActivityStability   IndicatorConfig
	DuplicateContent    IndicatorConfig

	// Locale drives the geographic-consistency indicator. The default is the
	// Korean market; other markets plug in their own country code and script
	// detector.
	Locale LocaleSignal

	// UniformRatioPenalty is subtracted from the engagement-asymmetry
	// sub-score when the per-post like/view ratio is near-constant.
	UniformRatioPenalty   float64
	UniformRatioCV        float64
	UniformRatioMinPosts  int

	// Duplicate-content deductions from the 100 baseline.
	DuplicateJaccardThreshold float64
	DuplicateBurstWindow      float64 // minutes
}

// DefaultConfig returns the production configuration: the documented
// thresholds with 50.0 as the universal insufficient-data default.
func DefaultConfig() Config {
	return Config{
		Weights: IndicatorWeights{
			ViewVariability:     0.20,
			EngagementAsymmetry: 0.25,
			CommentEntropy:      0.15,
			ActivityStability:   0.10,
			DuplicateContent:    0.15,
			Geographic:          0.15,
		},
		ViewVariability:     IndicatorConfig{Neutral: 50.0, MinSamples: 2},
		EngagementAsymmetry: IndicatorConfig{Neutral: 50.0, MinSamples: 2},
		CommentEntropy:      IndicatorConfig{Neutral: 50.0, MinSamples: 2},
		ActivityStability:   IndicatorConfig{Neutral: 50.0, MinSamples: 2},
		DuplicateContent:    IndicatorConfig{Neutral: 50.0, MinSamples: 2},

		Locale: KoreanLocale(),

		UniformRatioPenalty:  15.0,
		UniformRatioCV:       0.05,
		UniformRatioMinPosts: 3,

		DuplicateJaccardThreshold: 0.70,
		DuplicateBurstWindow:      5.0,
	}
}
