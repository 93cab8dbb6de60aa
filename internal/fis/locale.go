package fis

import "unicode"

// LocaleSignal describes the target market used by the geographic-consistency
// indicator. A creator counts as market-targeted when their text is written in
// the market's script, or when at least TargetAudienceRatio of their audience
// lives in the market country.
type LocaleSignal struct {
	// Country is the audience country code the indicator measures, e.g. "KR".
	Country string

	// TargetAudienceRatio is the audience fraction above which a creator is
	// treated as market-targeted even without script evidence.
	TargetAudienceRatio float64

	// IsTargetScript reports whether a rune belongs to the market's script.
	IsTargetScript func(r rune) bool
}

// KoreanLocale returns the default market signal: KR audiences with Hangul
// script detection.
func KoreanLocale() LocaleSignal {
	return LocaleSignal{
		Country:             "KR",
		TargetAudienceRatio: 0.50,
		IsTargetScript:      isHangul,
	}
}

func isHangul(r rune) bool {
	return unicode.Is(unicode.Hangul, r)
}

// ContainsTargetScript reports whether any rune of text is in the market
// script.
func (l LocaleSignal) ContainsTargetScript(text string) bool {
	if l.IsTargetScript == nil {
		return false
	}
	for _, r := range text {
		if l.IsTargetScript(r) {
			return true
		}
	}
	return false
}
