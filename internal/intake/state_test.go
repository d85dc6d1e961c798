package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
)

func staticExtractor(fields analyzer.PatientFields) FieldExtractor {
	return func(context.Context, string) analyzer.PatientFields {
		return fields
	}
}

func TestTransition_FullConversation(t *testing.T) {
	ctx := context.Background()
	extract := staticExtractor(analyzer.PatientFields{
		Name:    "Alice Brown",
		Age:     "34",
		Address: "Via Roma 1, Turin",
		Gender:  "female",
	})

	res := Transition(ctx, StateGreeting, Record{}, "hello", extract)
	assert.Equal(t, StateAskingPatientInfo, res.State)
	assert.Contains(t, res.Response, "Full Name")
	assert.False(t, res.Completed)

	res = Transition(ctx, res.State, res.Record, "I'm Alice Brown, 34, from Turin", extract)
	assert.Equal(t, StateAskingSymptoms, res.State)
	assert.Equal(t, "Alice Brown", res.Record.PatientName)
	assert.Equal(t, "34", res.Record.PatientAge)
	assert.Contains(t, res.Response, "Thank you, Alice Brown!")
	assert.Contains(t, res.Response, "symptoms")

	res = Transition(ctx, res.State, res.Record, "constant worry, racing heart", extract)
	assert.Equal(t, StateAskingClinicalHistory, res.State)
	assert.Equal(t, "constant worry, racing heart", res.Record.Symptoms)
	assert.Contains(t, res.Response, "clinical history")

	res = Transition(ctx, res.State, res.Record, "no prior diagnoses", extract)
	assert.Equal(t, StateAskingContext, res.State)
	assert.Equal(t, "no prior diagnoses", res.Record.ClinicalHistory)
	assert.Contains(t, res.Response, "context")

	res = Transition(ctx, res.State, res.Record, "started after changing jobs", extract)
	assert.Equal(t, StateProcessing, res.State)
	assert.Equal(t, "started after changing jobs", res.Record.Context)
	assert.True(t, res.Completed)
	assert.Contains(t, res.Response, "analyze your needs")

	require.True(t, res.Record.Complete())
	assert.NoError(t, res.Record.RequireComplete())
}

func TestTransition_TerminalStates(t *testing.T) {
	ctx := context.Background()
	extract := staticExtractor(analyzer.PatientFields{})
	rec := Record{PatientName: "Alice Brown"}

	for _, state := range []State{StateProcessing, StateCompleted} {
		res := Transition(ctx, state, rec, "anything else", extract)
		assert.Equal(t, state, res.State)
		assert.Equal(t, rec, res.Record)
		assert.Equal(t, alreadyCollectedResponse, res.Response)
		assert.True(t, res.Completed)
	}
}

func TestTransition_ExtractionFallbacksAreStored(t *testing.T) {
	extract := staticExtractor(analyzer.PatientFields{
		Name:    analyzer.NotProvided,
		Age:     analyzer.NotProvided,
		Address: analyzer.NotProvided,
		Gender:  analyzer.NotProvided,
	})

	res := Transition(context.Background(), StateAskingPatientInfo, Record{}, "no details", extract)
	assert.Equal(t, analyzer.NotProvided, res.Record.PatientName)
	assert.Contains(t, res.Response, "Thank you, "+analyzer.NotProvided)
}

func TestRecordComplete(t *testing.T) {
	rec := Record{
		PatientName:     "Alice",
		PatientAge:      "34",
		PatientAddress:  "Turin",
		PatientGender:   "female",
		Symptoms:        "worry",
		ClinicalHistory: "none",
		Context:         "work stress",
	}
	assert.True(t, rec.Complete())

	rec.Context = ""
	assert.False(t, rec.Complete())
	assert.ErrorIs(t, rec.RequireComplete(), ErrIncompleteIntake)

	assert.False(t, Record{}.Complete())
}
