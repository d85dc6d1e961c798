package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
)

// fixedEstimator returns a per-address proximity score, defaulting to 0.
type fixedEstimator struct {
	scores map[string]float64
}

func (e *fixedEstimator) EstimateProximity(ctx context.Context, patientAddress, specialistAddress string) analyzer.Proximity {
	return analyzer.Proximity{Score: e.scores[specialistAddress]}
}

func TestExpertiseScore(t *testing.T) {
	sp := Specialist{
		Expertise:    "Anxiety and social phobia",
		Subspecialty: "Cognitive behavioral therapy",
	}

	// Both tokens hit the expertise text (2 each), neither hits the
	// subspecialty text.
	assert.InDelta(t, 4.0, ExpertiseScore(sp, []string{"anxiety", "social"}), 0.001)

	// A token may score in both fields.
	sp2 := Specialist{Expertise: "trauma therapy", Subspecialty: "trauma-focused CBT"}
	assert.InDelta(t, 3.0, ExpertiseScore(sp2, []string{"trauma"}), 0.001)

	assert.Zero(t, ExpertiseScore(sp, []string{"cardiology"}))
	assert.Zero(t, ExpertiseScore(sp, nil))
}

func TestSearchTokens(t *testing.T) {
	tokens := SearchTokens([]string{"Anxiety", "sleep"}, []string{"Social Phobia"})
	assert.Equal(t, []string{"anxiety", "sleep", "social", "phobia"}, tokens)
}

func TestMatch_WeightedScore(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{scores: map[string]float64{"turin": 4}}, nil)

	specialists := []Specialist{{
		Name:         "Dr. Bianchi",
		Expertise:    "anxiety and social phobia",
		Subspecialty: "cognitive behavioral therapy",
		Address:      "turin",
	}}

	match, err := scorer.Match(context.Background(), specialists, []string{"anxiety", "social"}, nil, "patient home")
	require.NoError(t, err)

	assert.InDelta(t, 4.0, match.Specialist.ExpertiseScore, 0.001)
	assert.InDelta(t, 4.0, match.Specialist.LocationScore, 0.001)
	// 4*0.7 + 4*0.3
	assert.InDelta(t, 4.0, match.Specialist.MatchScore, 0.001)
	assert.Contains(t, match.Note, "Best match")
}

func TestMatch_TieKeepsInputOrder(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{}, nil)

	specialists := []Specialist{
		{Name: "Dr. First", Expertise: "depression"},
		{Name: "Dr. Second", Expertise: "depression"},
	}

	match, err := scorer.Match(context.Background(), specialists, []string{"depression"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Dr. First", match.Specialist.Name)
}

func TestMatch_ZeroScoreGetsGenericNote(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{}, nil)

	specialists := []Specialist{
		{Name: "Dr. Verdi", Expertise: "eating disorders"},
	}

	match, err := scorer.Match(context.Background(), specialists, []string{"insomnia"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, genericMatchNote, match.Note)
	assert.Zero(t, match.Specialist.MatchScore)
}

func TestMatch_NoteListsTopThreeConcerns(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{}, nil)

	specialists := []Specialist{{Name: "Dr. Neri", Expertise: "anxiety"}}
	concerns := []string{"anxiety", "panic", "insomnia", "burnout"}

	match, err := scorer.Match(context.Background(), specialists, []string{"anxiety"}, concerns, "")
	require.NoError(t, err)
	assert.Contains(t, match.Note, "anxiety, panic, insomnia")
	assert.NotContains(t, match.Note, "burnout")
}

func TestMatch_EmptyDirectory(t *testing.T) {
	scorer := NewScorer(&fixedEstimator{}, nil)

	_, err := scorer.Match(context.Background(), nil, []string{"anxiety"}, nil, "")
	assert.ErrorIs(t, err, ErrNoSpecialists)
}

func TestDirectory(t *testing.T) {
	dir := NewDirectory([]Specialist{{Name: "A"}, {Name: "B"}})
	require.Equal(t, 2, dir.Len())

	list := dir.List(context.Background())
	list[0].Name = "mutated"
	assert.Equal(t, "A", dir.List(context.Background())[0].Name)

	dir.Replace([]Specialist{{Name: "C"}})
	assert.Equal(t, 1, dir.Len())
}
