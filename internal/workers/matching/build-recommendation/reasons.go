package buildrecommendation

import (
	"fmt"
	"hash/fnv"

	"creator-match-workers/internal/models"
)

// reasonTemplates hold the per-role, per-tier explanation variants. The
// match percentage is the only interpolated value; everything else in the
// row already carries the raw numbers.
var reasonTemplates = map[models.Role]map[string][]string{
	models.RoleExpert: {
		tierHigh: {
			"시술 전문성과 캠페인 적합도 %.0f%%를 갖춘 검증된 전문가입니다.",
			"전문 시술 경력 기반 콘텐츠로 캠페인과 %.0f%% 일치하는 전문가입니다.",
		},
		tierSolid: {
			"전문 지식 기반 콘텐츠가 캠페인 방향과 %.0f%% 부합합니다.",
			"업계 전문가로서 캠페인 주제에 %.0f%% 적합한 콘텐츠를 제작합니다.",
		},
		tierFit: {
			"전문가 관점의 콘텐츠로 캠페인에 %.0f%% 연관성이 있습니다.",
		},
	},
	models.RoleTrendsetter: {
		tierHigh: {
			"타겟 오디언스와의 높은 공감대로 캠페인 적합도 %.0f%%를 기록했습니다.",
			"일상 콘텐츠 반응이 우수하며 캠페인과 %.0f%% 일치합니다.",
		},
		tierSolid: {
			"트렌드 감각이 캠페인 콘셉트와 %.0f%% 부합합니다.",
			"팔로워 참여도가 안정적이며 캠페인 적합도는 %.0f%%입니다.",
		},
		tierFit: {
			"라이프스타일 콘텐츠로 캠페인에 %.0f%% 연관성이 있습니다.",
		},
	},
}

// approachClauses append a campaign-flavored sentence for non-consumer
// briefs.
var approachClauses = map[models.MarketingApproach]string{
	models.ApproachProfessional:   " 전문가 대상 제품 소구에 적합합니다.",
	models.ApproachExpertOriented: " 성분·효능 중심 메시지 전달에 강점이 있습니다.",
}

const (
	tierHigh  = "high"
	tierSolid = "solid"
	tierFit   = "fit"
)

func matchTier(percent float64) string {
	switch {
	case percent >= 85:
		return tierHigh
	case percent >= 70:
		return tierSolid
	default:
		return tierFit
	}
}

// reasonFor picks a deterministic template variant per creator, so repeated
// runs over the same candidate list produce identical text while adjacent
// rows do not all read the same.
func reasonFor(c models.RankedCandidate, approach models.MarketingApproach) string {
	role := c.Role
	if _, ok := reasonTemplates[role]; !ok {
		role = models.RoleTrendsetter
	}
	variants := reasonTemplates[role][matchTier(c.MatchPercent)]

	h := fnv.New32a()
	h.Write([]byte(c.Username))
	template := variants[int(h.Sum32())%len(variants)]

	reason := fmt.Sprintf(template, c.MatchPercent)
	if clause, ok := approachClauses[approach]; ok {
		reason += clause
	}
	return reason
}
