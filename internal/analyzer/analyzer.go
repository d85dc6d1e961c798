// Package analyzer wraps the remote text-generation collaborator that turns
// free-text patient input into structured data. Everything here is treated as
// an external, possibly slow, possibly failing service; callers receive
// documented fallback values instead of hard failures wherever the pipeline
// can still produce a usable result.
package analyzer

import "context"

// NotProvided is the placeholder for patient fields the collaborator could
// not extract.
const NotProvided = "Not provided"

// DefaultProximityScore is the permissive fallback when proximity estimation
// fails: the specialist is treated as co-located rather than excluded.
const DefaultProximityScore = 5.0

// FallbackRecommendation is returned when recommendation generation fails.
const FallbackRecommendation = "Unable to generate detailed recommendations at this time. Please discuss your concerns directly with the specialist."

// PatientFields is the structured patient information extracted from a
// free-text introduction.
type PatientFields struct {
	Name    string `json:"patient_name"`
	Age     string `json:"patient_age"`
	Address string `json:"patient_address"`
	Gender  string `json:"patient_gender"`
}

// ConcernAnalysis is the collaborator's triage of the patient's narrative.
type ConcernAnalysis struct {
	PrimaryConcerns []string `json:"primary_concerns"`
	Symptoms        []string `json:"symptoms"`
	UrgencyLevel    string   `json:"urgency_level"`
	Keywords        []string `json:"keywords"`
	Summary         string   `json:"summary"`
}

// Proximity is the collaborator's estimate of how close two addresses are.
// Score runs from -1 (different country) through 0 (different city) to 5
// (same location).
type Proximity struct {
	DistanceCategory string  `json:"estimated_distance_category"`
	Score            float64 `json:"proximity_score"`
	Reasoning        string  `json:"reasoning"`
}

// RecommendationRequest carries everything the collaborator needs to write
// pre-appointment guidance for the patient.
type RecommendationRequest struct {
	Symptoms        string
	ClinicalHistory string
	Context         string
	Summary         string
	PrimaryConcerns []string
	UrgencyLevel    string
	SpecialistName  string
	Expertise       string
}

// Analyzer is the capability interface the intake pipeline receives at
// construction. Tests substitute deterministic fakes.
type Analyzer interface {
	// ExtractPatientFields parses name/age/address/gender out of free text.
	// Fields that cannot be extracted come back as NotProvided; the call
	// itself does not fail on collaborator errors.
	ExtractPatientFields(ctx context.Context, freeText string) PatientFields

	// AnalyzeConcerns triages the collected narrative into concerns,
	// symptoms, urgency, and matching keywords.
	AnalyzeConcerns(ctx context.Context, address, symptoms, clinicalHistory, situationContext string) (ConcernAnalysis, error)

	// EstimateProximity scores the closeness of two addresses. On failure
	// it returns DefaultProximityScore rather than an error.
	EstimateProximity(ctx context.Context, patientAddress, specialistAddress string) Proximity

	// GenerateRecommendations writes short pre-appointment guidance. On
	// failure it returns FallbackRecommendation.
	GenerateRecommendations(ctx context.Context, req RecommendationRequest) string
}
