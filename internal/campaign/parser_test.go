package campaign

import (
	"testing"

	"creator-match-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsumerBrief(t *testing.T) {
	p := NewParser()

	brief := p.Parse("20대 여성 대상 틴트 신제품 홍보, #데일리메이크업 추천 콘텐츠")

	assert.Equal(t, "female", brief.TargetGender)
	require.NotNil(t, brief.TargetAge)
	assert.Equal(t, models.AgeRange{Min: 20, Max: 29}, *brief.TargetAge)
	assert.Equal(t, models.ApproachConsumer, brief.MarketingApproach)
	assert.Equal(t, "틴트", brief.ProductType)
	assert.Contains(t, brief.Keywords, "데일리메이크업")
	assert.Contains(t, brief.Keywords, "틴트")
}

func TestParseProfessionalBrief(t *testing.T) {
	p := NewParser()

	brief := p.Parse("살롱 전용 염색약 런칭, 원장급 시술 후기 중심")

	assert.Equal(t, models.ApproachProfessional, brief.MarketingApproach)
	assert.Equal(t, "염색약", brief.ProductType)
	assert.Nil(t, brief.TargetAge)
	assert.Empty(t, brief.TargetGender)
}

func TestParseExpertOrientedBrief(t *testing.T) {
	p := NewParser()

	brief := p.Parse("더마 성분 중심의 앰플, 효능 데이터로 소구")

	assert.Equal(t, models.ApproachExpertOriented, brief.MarketingApproach)
	assert.Equal(t, "앰플", brief.ProductType)
}

func TestParseAgePatterns(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		text string
		want *models.AgeRange
	}{
		{"decade", "30대 타겟", &models.AgeRange{Min: 30, Max: 39}},
		{"double decade", "2030대 타겟", &models.AgeRange{Min: 20, Max: 39}},
		{"explicit span", "20-35세 타겟", &models.AgeRange{Min: 20, Max: 35}},
		{"tilde span", "25~34 타겟", &models.AgeRange{Min: 25, Max: 34}},
		{"mz generation", "MZ세대 타겟", &models.AgeRange{Min: 20, Max: 39}},
		{"no signal", "신제품 홍보", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brief := p.Parse(tt.text)
			if tt.want == nil {
				assert.Nil(t, brief.TargetAge)
				return
			}
			require.NotNil(t, brief.TargetAge)
			assert.Equal(t, *tt.want, *brief.TargetAge)
		})
	}
}

func TestParseGenderEnglishTerms(t *testing.T) {
	p := NewParser()

	assert.Equal(t, "female", p.Parse("campaign for female customers").TargetGender)
	assert.Equal(t, "male", p.Parse("campaign for male grooming").TargetGender)
	// "female" must not fall through to the male branch.
	assert.Equal(t, "female", p.Parse("Female-first positioning").TargetGender)
}

func TestParseNeverFails(t *testing.T) {
	p := NewParser()

	brief := p.Parse("")
	assert.Empty(t, brief.TargetGender)
	assert.Nil(t, brief.TargetAge)
	assert.Equal(t, models.ApproachConsumer, brief.MarketingApproach)
	assert.Empty(t, brief.Keywords)
}
