package analyzer

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedChatClient struct {
	reply string
	err   error
	calls int
}

func (c *scriptedChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.calls++
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.reply}},
		},
	}, nil
}

func TestExtractPatientFields(t *testing.T) {
	client := &scriptedChatClient{reply: `{
		"patient_name": "Alice Brown",
		"patient_age": "29",
		"patient_address": "Via Maria Ausilliatrice 32, Turin, Italy",
		"patient_gender": "Female"
	}`}
	a := NewOpenAIAnalyzer(client, "", nil)

	fields := a.ExtractPatientFields(context.Background(), "Name: Alice Brown, Age: 29 ...")
	assert.Equal(t, "Alice Brown", fields.Name)
	assert.Equal(t, "29", fields.Age)
	assert.Equal(t, "Female", fields.Gender)
	assert.Equal(t, 1, client.calls)
}

func TestExtractPatientFields_FallsBackOnError(t *testing.T) {
	a := NewOpenAIAnalyzer(&scriptedChatClient{err: errors.New("rate limited")}, "", nil)

	fields := a.ExtractPatientFields(context.Background(), "anything")
	assert.Equal(t, NotProvided, fields.Name)
	assert.Equal(t, NotProvided, fields.Age)
	assert.Equal(t, NotProvided, fields.Address)
	assert.Equal(t, NotProvided, fields.Gender)
}

func TestExtractPatientFields_FillsEmptyFields(t *testing.T) {
	a := NewOpenAIAnalyzer(&scriptedChatClient{reply: `{"patient_name": "Bob"}`}, "", nil)

	fields := a.ExtractPatientFields(context.Background(), "I'm Bob")
	assert.Equal(t, "Bob", fields.Name)
	assert.Equal(t, NotProvided, fields.Address)
}

func TestAnalyzeConcerns(t *testing.T) {
	client := &scriptedChatClient{reply: `{
		"primary_concerns": ["anxiety", "social phobia"],
		"symptoms": ["racing heart", "sweating"],
		"urgency_level": "moderate",
		"keywords": ["anxiety", "social"],
		"summary": "Patient reports worsening social anxiety."
	}`}
	a := NewOpenAIAnalyzer(client, "", nil)

	analysis, err := a.AnalyzeConcerns(context.Background(), "Turin", "anxious in social situations", "GAD diagnosis", "new job")
	require.NoError(t, err)
	assert.Equal(t, []string{"anxiety", "social"}, analysis.Keywords)
	assert.Equal(t, "moderate", analysis.UrgencyLevel)
	assert.Len(t, analysis.PrimaryConcerns, 2)
}

func TestAnalyzeConcerns_SurfacesErrors(t *testing.T) {
	a := NewOpenAIAnalyzer(&scriptedChatClient{err: errors.New("boom")}, "", nil)

	_, err := a.AnalyzeConcerns(context.Background(), "", "", "", "")
	assert.Error(t, err)
}

func TestEstimateProximity(t *testing.T) {
	client := &scriptedChatClient{reply: `{
		"estimated_distance_category": "1-5km",
		"proximity_score": 3,
		"reasoning": "same city, different neighborhood"
	}`}
	a := NewOpenAIAnalyzer(client, "", nil)

	prox := a.EstimateProximity(context.Background(), "Via Roma 1, Turin", "Corso Francia 10, Turin")
	assert.InDelta(t, 3.0, prox.Score, 0.001)
	assert.Equal(t, "1-5km", prox.DistanceCategory)
}

func TestEstimateProximity_PermissiveFallback(t *testing.T) {
	a := NewOpenAIAnalyzer(&scriptedChatClient{err: errors.New("timeout")}, "", nil)

	prox := a.EstimateProximity(context.Background(), "a", "b")
	assert.InDelta(t, DefaultProximityScore, prox.Score, 0.001)
}

func TestGenerateRecommendations_Fallback(t *testing.T) {
	a := NewOpenAIAnalyzer(&scriptedChatClient{err: errors.New("unavailable")}, "", nil)

	text := a.GenerateRecommendations(context.Background(), RecommendationRequest{})
	assert.Equal(t, FallbackRecommendation, text)
}

func TestGenerateRecommendations(t *testing.T) {
	a := NewOpenAIAnalyzer(&scriptedChatClient{reply: "  1. Keep a symptom journal.\n"}, "", nil)

	text := a.GenerateRecommendations(context.Background(), RecommendationRequest{
		Symptoms:       "anxiety",
		SpecialistName: "Dr. Rossi",
	})
	assert.Equal(t, "1. Keep a symptom journal.", text)
}
