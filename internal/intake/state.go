// Package intake tracks the linear patient-intake conversation: a fixed
// sequence of questions whose answers accumulate into a Record, ending in a
// processing step that hands off to specialist matching.
package intake

import (
	"context"
	"errors"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
)

// ErrIncompleteIntake indicates processing or finalization was attempted
// before every intake field was collected.
var ErrIncompleteIntake = errors.New("intake: not all information has been collected")

// State identifies where the conversation stands. Transitions are strictly
// linear; there is no path back to an earlier state.
type State string

const (
	StateGreeting               State = "greeting"
	StateAskingPatientInfo      State = "asking_patient_info"
	StateAskingSymptoms         State = "asking_symptoms"
	StateAskingClinicalHistory  State = "asking_clinical_history"
	StateAskingContext          State = "asking_context"
	StateProcessing             State = "processing"
	StateCompleted              State = "completed"
)

// Record accumulates the patient's answers. Once every field is set the
// record is treated as read-only.
type Record struct {
	PatientName     string `json:"patient_name"`
	PatientAge      string `json:"patient_age"`
	PatientAddress  string `json:"patient_address"`
	PatientGender   string `json:"patient_gender"`
	Symptoms        string `json:"symptoms"`
	ClinicalHistory string `json:"clinical_history"`
	Context         string `json:"context"`
}

// Complete reports whether all seven intake fields are populated.
func (r Record) Complete() bool {
	return r.PatientName != "" &&
		r.PatientAge != "" &&
		r.PatientAddress != "" &&
		r.PatientGender != "" &&
		r.Symptoms != "" &&
		r.ClinicalHistory != "" &&
		r.Context != ""
}

// RequireComplete returns ErrIncompleteIntake unless every field is set.
func (r Record) RequireComplete() error {
	if !r.Complete() {
		return ErrIncompleteIntake
	}
	return nil
}

// FieldExtractor parses structured patient fields out of a free-text
// introduction. The analyzer's extraction method satisfies it.
type FieldExtractor func(ctx context.Context, freeText string) analyzer.PatientFields

// Result is the outcome of a single transition.
type Result struct {
	State    State
	Record   Record
	Response string
	// Completed is true once all information is collected and processing
	// can begin.
	Completed bool
}

const (
	greetingResponse = "Hello! I'm here to help match you with the right mental health specialist. To provide the best recommendation, I'd like to start by collecting some basic information.\n\nPlease provide the following information:\n- Full Name:\n- Age:\n- Address:\n- Gender:"

	symptomsQuestion = "Could you please describe the symptoms you've been experiencing? This could include feelings, behaviors, or physical sensations."

	historyQuestion = "Thank you for sharing that with me. I understand this can be difficult to talk about.\n\nNext, could you tell me about your clinical history? This includes any previous mental health diagnoses, past treatments or therapy, medications you're taking, or relevant medical conditions."

	contextQuestion = "I appreciate you sharing that information.\n\nFinally, could you provide some context about your situation? This might include when these symptoms started, what triggers them, how they're affecting your daily life, work, or relationships, and what you hope to achieve through treatment."

	processingResponse = "Thank you for providing all that information. Let me analyze your needs and find the most suitable specialist for you..."

	alreadyCollectedResponse = "I've already collected all the necessary information. Processing your request..."
)

// Transition advances the conversation exactly one state for one inbound
// message and returns the updated state, record, and the reply to send. The
// message received while asking for patient info is parsed by the extractor;
// every other collecting state stores the raw message verbatim. Processing is
// entered automatically when the context answer lands; Completed (and
// Processing itself) only ever replies with the static already-collected
// response.
func Transition(ctx context.Context, state State, rec Record, message string, extract FieldExtractor) Result {
	switch state {
	case StateGreeting:
		return Result{State: StateAskingPatientInfo, Record: rec, Response: greetingResponse}

	case StateAskingPatientInfo:
		fields := extract(ctx, message)
		rec.PatientName = fields.Name
		rec.PatientAge = fields.Age
		rec.PatientAddress = fields.Address
		rec.PatientGender = fields.Gender
		return Result{
			State:    StateAskingSymptoms,
			Record:   rec,
			Response: "Thank you, " + rec.PatientName + "! Now let's discuss your concerns.\n\n" + symptomsQuestion,
		}

	case StateAskingSymptoms:
		rec.Symptoms = message
		return Result{State: StateAskingClinicalHistory, Record: rec, Response: historyQuestion}

	case StateAskingClinicalHistory:
		rec.ClinicalHistory = message
		return Result{State: StateAskingContext, Record: rec, Response: contextQuestion}

	case StateAskingContext:
		rec.Context = message
		return Result{State: StateProcessing, Record: rec, Response: processingResponse, Completed: true}

	default:
		return Result{State: state, Record: rec, Response: alreadyCollectedResponse, Completed: true}
	}
}
