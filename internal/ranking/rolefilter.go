package ranking

import (
	"sort"
	"strings"
	"unicode"

	"creator-match-workers/internal/models"
)

// FilterOptions are the campaign-side acceptance constraints. Zero values
// mean "no constraint"; a constraint the candidate record cannot answer
// (unknown gender, unparseable age group) never rejects — the filter fails
// open, never closed.
type FilterOptions struct {
	Gender string
	Age    *models.AgeRange
}

// RoleCounts is the requested result size per role.
type RoleCounts struct {
	Expert      int `json:"expert"`
	Trendsetter int `json:"trendsetter"`
}

// Total returns the combined requested count.
func (c RoleCounts) Total() int { return c.Expert + c.Trendsetter }

// SplitForApproach derives per-role counts from a campaign's marketing
// approach when the caller did not request explicit counts: the preferred
// role takes 60% of the total (rounded up), the other role the remainder.
func SplitForApproach(total int, approach models.MarketingApproach) RoleCounts {
	if total <= 0 {
		return RoleCounts{}
	}
	preferred := (total*6 + 9) / 10
	if preferred > total {
		preferred = total
	}
	if approach == models.ApproachConsumer {
		return RoleCounts{Expert: total - preferred, Trendsetter: preferred}
	}
	return RoleCounts{Expert: preferred, Trendsetter: total - preferred}
}

// FilterRole applies the role's acceptance policy and truncates to limit.
// Experts pass a permissive policy: only the gender constraint applies —
// professional service providers are not assumed audience-matched, so there
// is no age gate. Trendsetters pass the strict policy: gender plus age-range
// compatibility. Truncation happens after filtering so rejected candidates
// never consume requested slots.
func FilterRole(candidates []models.RankedCandidate, role models.Role, opts FilterOptions, limit int) []models.RankedCandidate {
	kept := make([]models.RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Role != role {
			continue
		}
		if !genderCompatible(c.Gender, opts.Gender) {
			continue
		}
		if role == models.RoleTrendsetter && !ageCompatible(c.AgeGroup, opts.Age) {
			continue
		}
		kept = append(kept, c)
	}
	if limit >= 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// SelectDiverse builds the final mixed list: each role filtered and capped at
// its requested count, shortfalls in one role backfilled from the other
// role's remaining eligible candidates, merged in fused-score order.
func SelectDiverse(candidates []models.RankedCandidate, counts RoleCounts, opts FilterOptions) []models.RankedCandidate {
	experts := FilterRole(candidates, models.RoleExpert, opts, -1)
	trends := FilterRole(candidates, models.RoleTrendsetter, opts, -1)

	selected := make([]models.RankedCandidate, 0, counts.Total())
	takeExperts := min(counts.Expert, len(experts))
	takeTrends := min(counts.Trendsetter, len(trends))
	selected = append(selected, experts[:takeExperts]...)
	selected = append(selected, trends[:takeTrends]...)

	// Backfill whichever role came up short from the other's leftovers.
	if shortfall := counts.Total() - len(selected); shortfall > 0 {
		leftovers := make([]models.RankedCandidate, 0, len(experts)+len(trends)-len(selected))
		leftovers = append(leftovers, experts[takeExperts:]...)
		leftovers = append(leftovers, trends[takeTrends:]...)
		sort.Slice(leftovers, func(i, j int) bool {
			if leftovers[i].FusedScore != leftovers[j].FusedScore {
				return leftovers[i].FusedScore > leftovers[j].FusedScore
			}
			return leftovers[i].Username < leftovers[j].Username
		})
		if shortfall > len(leftovers) {
			shortfall = len(leftovers)
		}
		selected = append(selected, leftovers[:shortfall]...)
	}

	sort.Slice(selected, func(i, j int) bool {
		if selected[i].FusedScore != selected[j].FusedScore {
			return selected[i].FusedScore > selected[j].FusedScore
		}
		return selected[i].Username < selected[j].Username
	})
	return selected
}

func genderCompatible(candidate, wanted string) bool {
	if wanted == "" || candidate == "" {
		return true
	}
	return strings.EqualFold(candidate, wanted)
}

func ageCompatible(ageGroup string, want *models.AgeRange) bool {
	if want == nil {
		return true
	}
	mid, ok := ageGroupMidpoint(ageGroup)
	if !ok {
		return true
	}
	return want.Contains(mid)
}

// ageGroupMidpoint turns labels like "20s", "20대", or "34" into a
// representative age. Decade labels map to their midpoint.
func ageGroupMidpoint(label string) (int, bool) {
	n := 0
	seen := false
	for _, r := range label {
		if unicode.IsDigit(r) {
			n = n*10 + int(r-'0')
			seen = true
			continue
		}
		if seen {
			break
		}
	}
	if !seen || n < 10 || n > 99 {
		return 0, false
	}
	if n%10 == 0 {
		n += 5
	}
	return n, true
}
