package matching

import (
	"context"
	"fmt"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// PatientDetails is the fully collected intake, flattened for processing.
type PatientDetails struct {
	Name            string
	Age             string
	Address         string
	Gender          string
	Symptoms        string
	ClinicalHistory string
	Context         string
}

// Report is the end product of intake processing: who the patient is, what
// the collaborator made of their situation, and which specialist won.
type Report struct {
	PatientInfo     analyzer.PatientFields `json:"patient_info"`
	Summary         string                 `json:"summary"`
	UrgencyLevel    string                 `json:"urgency_level"`
	Specialist      Specialist             `json:"specialist"`
	MatchNote       string                 `json:"match_note"`
	Recommendations string                 `json:"recommendations"`
	Symptoms        []string               `json:"symptoms"`
}

// Service runs the full analyze-and-match step over a completed intake.
type Service struct {
	directory *Directory
	analyzer  analyzer.Analyzer
	scorer    *Scorer
	logger    *logging.Logger
}

// NewService wires the matching service. The analyzer doubles as the scorer's
// proximity estimator.
func NewService(directory *Directory, az analyzer.Analyzer, logger *logging.Logger) *Service {
	if directory == nil {
		panic("matching: directory cannot be nil")
	}
	if az == nil {
		panic("matching: analyzer cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		directory: directory,
		analyzer:  az,
		scorer:    NewScorer(az, logger),
		logger:    logger,
	}
}

// Process analyzes the patient's narrative, ranks the directory against it,
// and generates recommendations. Recommendation failures never fail the
// report; concern analysis failures do, since matching has nothing to rank
// against without keywords.
func (s *Service) Process(ctx context.Context, details PatientDetails) (*Report, error) {
	analysis, err := s.analyzer.AnalyzeConcerns(ctx, details.Address, details.Symptoms, details.ClinicalHistory, details.Context)
	if err != nil {
		return nil, fmt.Errorf("matching: analyze concerns: %w", err)
	}

	match, err := s.scorer.Match(ctx, s.directory.List(ctx), analysis.Keywords, analysis.PrimaryConcerns, details.Address)
	if err != nil {
		return nil, err
	}

	recommendations := s.analyzer.GenerateRecommendations(ctx, analyzer.RecommendationRequest{
		Symptoms:        details.Symptoms,
		ClinicalHistory: details.ClinicalHistory,
		Context:         details.Context,
		Summary:         analysis.Summary,
		PrimaryConcerns: analysis.PrimaryConcerns,
		UrgencyLevel:    analysis.UrgencyLevel,
		SpecialistName:  match.Specialist.Name,
		Expertise:       match.Specialist.Expertise,
	})

	s.logger.Info("intake processed",
		"specialist", match.Specialist.Name,
		"match_score", match.Specialist.MatchScore,
		"urgency", analysis.UrgencyLevel,
	)

	return &Report{
		PatientInfo: analyzer.PatientFields{
			Name:    details.Name,
			Age:     details.Age,
			Address: details.Address,
			Gender:  details.Gender,
		},
		Summary:         analysis.Summary,
		UrgencyLevel:    analysis.UrgencyLevel,
		Specialist:      match.Specialist,
		MatchNote:       match.Note,
		Recommendations: recommendations,
		Symptoms:        analysis.Symptoms,
	}, nil
}
