package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// Combined score weighting: expertise dominates, location breaks near-ties.
const (
	expertiseWeight = 0.7
	locationWeight  = 0.3
)

// genericMatchNote annotates a result whose top combined score is exactly
// zero — nothing in the directory matched the patient's keywords.
const genericMatchNote = "General recommendation - please describe your concerns to the specialist"

// ProximityEstimator is the slice of the analyzer the scorer needs. The full
// analyzer.Analyzer satisfies it; tests use fixed-score fakes.
type ProximityEstimator interface {
	EstimateProximity(ctx context.Context, patientAddress, specialistAddress string) analyzer.Proximity
}

// Match is the ranked winner with its derived scores and a human-readable
// annotation.
type Match struct {
	Specialist Specialist `json:"specialist"`
	Note       string     `json:"match_note"`
}

// Scorer ranks specialists for a patient.
type Scorer struct {
	estimator ProximityEstimator
	logger    *logging.Logger
}

// NewScorer builds a scorer around a proximity estimator.
func NewScorer(estimator ProximityEstimator, logger *logging.Logger) *Scorer {
	if estimator == nil {
		panic("matching: proximity estimator cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Scorer{estimator: estimator, logger: logger}
}

// ExpertiseScore counts keyword hits against a specialist's expertise fields:
// 2 points per token found in the expertise text, 1 per token found in the
// subspecialty text. A token may score in both fields. Tokens are expected
// lower-cased.
func ExpertiseScore(sp Specialist, tokens []string) float64 {
	expertise := strings.ToLower(sp.Expertise)
	subspecialty := strings.ToLower(sp.Subspecialty)

	score := 0.0
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.Contains(expertise, token) {
			score += 2
		}
		if strings.Contains(subspecialty, token) {
			score += 1
		}
	}
	return score
}

// SearchTokens flattens keywords and primary concerns into the lower-cased
// token set used for expertise scoring. Multi-word concerns contribute one
// token per word.
func SearchTokens(keywords, primaryConcerns []string) []string {
	joined := strings.ToLower(strings.Join(append(append([]string{}, keywords...), primaryConcerns...), " "))
	return strings.Fields(joined)
}

// Match scores every specialist and returns the top one. The sort is stable
// and descending by combined score, so equal totals resolve to the specialist
// listed first. Proximity estimation runs once per specialist; estimator
// failures have already been absorbed into the permissive default score.
func (s *Scorer) Match(ctx context.Context, specialists []Specialist, keywords, primaryConcerns []string, patientAddress string) (Match, error) {
	if len(specialists) == 0 {
		return Match{}, ErrNoSpecialists
	}

	tokens := SearchTokens(keywords, primaryConcerns)
	s.logger.Info("scoring specialists", "candidates", len(specialists), "tokens", len(tokens))

	scored := make([]Specialist, len(specialists))
	for i, sp := range specialists {
		sp.ExpertiseScore = ExpertiseScore(sp, tokens)
		sp.LocationScore = s.estimator.EstimateProximity(ctx, patientAddress, sp.Address).Score
		sp.MatchScore = sp.ExpertiseScore*expertiseWeight + sp.LocationScore*locationWeight
		scored[i] = sp
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	best := scored[0]
	note := genericMatchNote
	if best.MatchScore != 0 {
		concerns := primaryConcerns
		if len(concerns) > 3 {
			concerns = concerns[:3]
		}
		note = fmt.Sprintf("Best match (expertise match: %.1f, location score: %.1f/10) for: %s",
			best.ExpertiseScore, best.LocationScore, strings.Join(concerns, ", "))
	}

	return Match{Specialist: best, Note: note}, nil
}
