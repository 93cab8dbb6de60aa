package roles

// Vocabulary is one role's keyword bag. Keywords without a weight override
// count with weight 1.0.
type Vocabulary struct {
	Keywords []string
	Weights  map[string]float64
}

func (v Vocabulary) weight(kw string) float64 {
	if w, ok := v.Weights[kw]; ok {
		return w
	}
	return 1.0
}

// DefaultExpertVocabulary covers professional service-provider language:
// salon titles, treatment and booking terms, certifications.
func DefaultExpertVocabulary() Vocabulary {
	return Vocabulary{
		Keywords: []string{
			"미용사", "원장", "살롱", "시술", "예약", "펌", "염색약", "레시피",
			"컬러리스트", "헤어아티스트", "디렉터", "전문가", "자격증", "교육",
			"클리닉", "두피케어", "발레아쥬", "테크닉", "조색", "미용실",
		},
		Weights: map[string]float64{
			"원장":  3.0,
			"미용사": 2.5,
			"살롱":  2.0,
			"시술":  2.0,
			"디렉터": 2.5,
		},
	}
}

// DefaultTrendsetterVocabulary covers lifestyle/creator language: styling,
// dailies, sponsorship and review terms.
func DefaultTrendsetterVocabulary() Vocabulary {
	return Vocabulary{
		Keywords: []string{
			"스타일링", "데일리룩", "OOTD", "추천", "꿀팁", "셀프", "홈케어",
			"트렌드", "트렌드세터", "패션", "일상", "크리에이터", "인플루언서",
			"협찬", "리뷰", "가성비", "꿀템", "솔직후기", "루틴", "유튜브",
		},
		Weights: map[string]float64{
			"크리에이터":  2.5,
			"인플루언서":  2.5,
			"트렌드세터": 3.0,
			"협찬":     2.0,
		},
	}
}
