package campaign

import (
	"regexp"
	"strconv"
	"strings"

	"creator-match-workers/internal/models"
)

var (
	// "20-35세", "20~35"
	reAgeSpan = regexp.MustCompile(`([1-9][0-9])\s*[-~]\s*([1-9][0-9])\s*세?`)
	// "2030대" style double decades
	reDoubleDecade = regexp.MustCompile(`([1-9]0)([1-9]0)대`)
	// "20대"
	reDecade = regexp.MustCompile(`([1-9]0)대`)

	reHashtag = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
)

var femaleTerms = []string{"여성", "여자", "female", "woman", "women"}
var maleTerms = []string{"남성", "남자", "male", "men"}

// professionalTerms mark briefs aimed at salon professionals; expertTerms
// mark efficacy-led consumer briefs that still want expert voices.
var professionalTerms = []string{"살롱", "미용실", "전문가용", "시술", "원장", "미용사"}
var expertTerms = []string{"성분", "효능", "임상", "더마", "기능성"}

// productTerms double as keyword candidates and product-type hints.
var productTerms = []string{
	"샴푸", "트리트먼트", "염색", "염색약", "펌", "헤어", "에센스", "앰플",
	"세럼", "스킨케어", "쿠션", "틴트", "선크림", "클렌징", "마스크팩", "토너",
}

// Parser turns a free-text campaign description into a structured brief.
// Extraction is best-effort: a pattern that does not match leaves the field
// zero, it never fails the parse.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(text string) models.CampaignBrief {
	brief := models.CampaignBrief{
		Description:       text,
		TargetGender:      extractGender(text),
		TargetAge:         extractAgeRange(text),
		MarketingApproach: inferApproach(text),
		Keywords:          extractKeywords(text),
	}
	brief.ProductType = firstProductTerm(text)
	return brief
}

// extractAgeRange recognizes explicit spans ("20-35세"), compound decades
// ("2030대"), single decades ("20대"), and the MZ generation shorthand.
func extractAgeRange(text string) *models.AgeRange {
	if m := reAgeSpan.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo <= hi {
			return &models.AgeRange{Min: lo, Max: hi}
		}
	}
	if m := reDoubleDecade.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo <= hi {
			return &models.AgeRange{Min: lo, Max: hi + 9}
		}
	}
	if m := reDecade.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return &models.AgeRange{Min: lo, Max: lo + 9}
	}
	if strings.Contains(strings.ToUpper(text), "MZ") {
		return &models.AgeRange{Min: 20, Max: 39}
	}
	return nil
}

func extractGender(text string) string {
	lower := strings.ToLower(text)
	for _, term := range femaleTerms {
		if strings.Contains(lower, term) {
			return "female"
		}
	}
	for _, term := range maleTerms {
		if strings.Contains(lower, term) {
			return "male"
		}
	}
	return ""
}

func inferApproach(text string) models.MarketingApproach {
	for _, term := range professionalTerms {
		if strings.Contains(text, term) {
			return models.ApproachProfessional
		}
	}
	for _, term := range expertTerms {
		if strings.Contains(text, term) {
			return models.ApproachExpertOriented
		}
	}
	return models.ApproachConsumer
}

func extractKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, m := range reHashtag.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, term := range productTerms {
		if strings.Contains(text, term) {
			add(term)
		}
	}
	return keywords
}

func firstProductTerm(text string) string {
	best := ""
	bestIdx := -1
	for _, term := range productTerms {
		idx := strings.Index(text, term)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx || (idx == bestIdx && len(term) > len(best)) {
			best = term
			bestIdx = idx
		}
	}
	return best
}
