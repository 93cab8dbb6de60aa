package ranking

import (
	"math"
	"sort"

	"creator-match-workers/internal/models"
)

// Mode selects the fusion formula. A deployment picks one mode and sticks
// with it; both produce match percentages, on different public ranges.
type Mode string

const (
	// ModeSimple reweights similarity by authenticity and maps to [65,98].
	ModeSimple Mode = "simple"
	// ModeHybrid fuses similarity, authenticity, and reciprocal-rank-fusion
	// position with temperature calibration, mapping to [55,98].
	ModeHybrid Mode = "hybrid"
)

// Config carries the fusion coefficients. DefaultConfig returns the
// production values; tests override individual fields.
type Config struct {
	Mode Mode

	// Full hybrid mode coefficients.
	SimilarityWeight   float64 // α
	AuthenticityWeight float64 // β
	RRFWeight          float64 // γ
	RRFConstant        float64 // k_rrf
	Temperature        float64
}

// DefaultConfig returns the hybrid-mode production coefficients.
func DefaultConfig() Config {
	return Config{
		Mode:               ModeHybrid,
		SimilarityWeight:   0.50,
		AuthenticityWeight: 0.25,
		RRFWeight:          0.25,
		RRFConstant:        60,
		Temperature:        0.5,
	}
}

// OverfetchFactor is how many times the requested count retrieval fetches
// before authenticity filtering, so the filter cannot starve the result set.
const OverfetchFactor = 3

// Candidate is one vector-search hit entering fusion. Authenticity is the
// indexed snapshot, not a live score.
type Candidate struct {
	Username     string      `json:"username"`
	Similarity   float64     `json:"similarity"`
	Authenticity float64     `json:"authenticity"`
	Role         models.Role `json:"role,omitempty"`
	Gender       string      `json:"gender,omitempty"`
	AgeGroup     string      `json:"ageGroup,omitempty"`
	Followers    int         `json:"followers,omitempty"`
}

// Ranker fuses vector-search candidates into calibrated match scores. It is
// stateless and safe for concurrent use.
type Ranker struct {
	cfg Config
}

func NewRanker(cfg Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank filters candidates below minAuthenticity, assigns 1-based rank
// positions by similarity, fuses, and returns the top k sorted by fused
// score descending. The minimum-authenticity cut happens before fusion so a
// low-trust, high-similarity candidate can never occupy a slot that should
// go to a borderline-trusted one. Ties break on username for deterministic
// output.
func (r *Ranker) Rank(candidates []Candidate, minAuthenticity float64, k int) []models.RankedCandidate {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Authenticity >= minAuthenticity {
			eligible = append(eligible, c)
		}
	}

	// Rank positions come from the similarity ordering.
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Similarity != eligible[j].Similarity {
			return eligible[i].Similarity > eligible[j].Similarity
		}
		return eligible[i].Username < eligible[j].Username
	})

	ranked := make([]models.RankedCandidate, 0, len(eligible))
	for i, c := range eligible {
		position := i + 1
		fused, percent := r.fuse(c, position)
		ranked = append(ranked, models.RankedCandidate{
			Username:     c.Username,
			Similarity:   c.Similarity,
			Authenticity: c.Authenticity,
			Role:         c.Role,
			Gender:       c.Gender,
			AgeGroup:     c.AgeGroup,
			Followers:    c.Followers,
			Rank:         position,
			FusedScore:   fused,
			MatchPercent: percent,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FusedScore != ranked[j].FusedScore {
			return ranked[i].FusedScore > ranked[j].FusedScore
		}
		return ranked[i].Username < ranked[j].Username
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func (r *Ranker) fuse(c Candidate, rank int) (fused, percent float64) {
	switch r.cfg.Mode {
	case ModeSimple:
		weighted := c.Similarity * (0.7 + 0.3*c.Authenticity/100.0)
		return weighted, math.Min(98, math.Max(65, 65+weighted*40))
	default:
		rrf := 1.0 / (r.cfg.RRFConstant + float64(rank))
		rrfNorm := rrf * (r.cfg.RRFConstant + 1)
		fused = r.cfg.SimilarityWeight*c.Similarity +
			r.cfg.AuthenticityWeight*c.Authenticity/100.0 +
			r.cfg.RRFWeight*rrfNorm
		calibrated := sigmoid((fused - 0.5) / r.cfg.Temperature)
		return fused, 55 + calibrated*43
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
