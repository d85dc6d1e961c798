package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// chatClient is the slice of the OpenAI client we actually use. Tests inject
// scripted fakes.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAnalyzer implements Analyzer against the OpenAI chat completions API.
type OpenAIAnalyzer struct {
	client chatClient
	model  string
	logger *logging.Logger
}

// NewOpenAIAnalyzer returns an analyzer backed by the given chat client.
func NewOpenAIAnalyzer(client chatClient, model string, logger *logging.Logger) *OpenAIAnalyzer {
	if client == nil {
		panic("analyzer: chat client cannot be nil")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIAnalyzer{client: client, model: model, logger: logger}
}

const extractSystemPrompt = "You are a helpful assistant that extracts structured information from text."

const extractPromptTemplate = `Extract the following patient information from the text below. If any field is not found, use "Not provided" as the value.

Text: %q

Please provide a JSON response with the following structure:
{
    "patient_name": "full name of the patient",
    "patient_age": "age of the patient",
    "patient_address": "address of the patient",
    "patient_gender": "gender of the patient"
}`

// ExtractPatientFields parses structured patient fields out of free text.
// Any collaborator failure degrades to all-NotProvided fields.
func (a *OpenAIAnalyzer) ExtractPatientFields(ctx context.Context, freeText string) PatientFields {
	fallback := PatientFields{
		Name:    NotProvided,
		Age:     NotProvided,
		Address: NotProvided,
		Gender:  NotProvided,
	}

	var fields PatientFields
	err := a.completeJSON(ctx, extractSystemPrompt, fmt.Sprintf(extractPromptTemplate, freeText), &fields)
	if err != nil {
		a.logger.Warn("patient field extraction failed, storing placeholders", "error", err)
		return fallback
	}

	if fields.Name == "" {
		fields.Name = NotProvided
	}
	if fields.Age == "" {
		fields.Age = NotProvided
	}
	if fields.Address == "" {
		fields.Address = NotProvided
	}
	if fields.Gender == "" {
		fields.Gender = NotProvided
	}
	return fields
}

const concernsSystemPrompt = "You are a compassionate mental health triage assistant."

const concernsPromptTemplate = `You are a mental health triage assistant. Analyze the following user's information and extract key details.

Location: %q
Symptoms: %q
Clinical History: %q
Context: %q

Please provide a JSON response with the following structure:
{
    "primary_concerns": ["list of main mental health issues mentioned"],
    "symptoms": ["list of specific symptoms or behaviors"],
    "urgency_level": "low/moderate/high",
    "keywords": ["keywords that would help match with specialist expertise"],
    "summary": "brief summary of the user's situation"
}

Be empathetic but professional. Focus on identifying the type of help needed.`

// AnalyzeConcerns triages the collected narrative. Unlike the other calls this
// one is load-bearing for matching, so failures surface as errors.
func (a *OpenAIAnalyzer) AnalyzeConcerns(ctx context.Context, address, symptoms, clinicalHistory, situationContext string) (ConcernAnalysis, error) {
	prompt := fmt.Sprintf(concernsPromptTemplate, address, symptoms, clinicalHistory, situationContext)

	var analysis ConcernAnalysis
	if err := a.completeJSON(ctx, concernsSystemPrompt, prompt, &analysis); err != nil {
		return ConcernAnalysis{}, fmt.Errorf("analyzer: concern analysis failed: %w", err)
	}
	return analysis, nil
}

const proximitySystemPrompt = "You are a geographic location analysis expert."

const proximityPromptTemplate = `You are a location analysis assistant. Compare the following two addresses and determine their proximity.

Patient Address: %q
Doctor Address: %q

Please provide a JSON response with the following structure:
{
    "estimated_distance_category": "less than 1km/1-5km/5-10km/more than 10km/different city/different country/unknown",
    "proximity_score": <number between -1 and 5, where 5 is same location, 4 is within 1km, 3 is 1-5km, 2 is 5-10km, 1 is more than 10km same city, 0 is different city, -1 is different country>,
    "reasoning": "brief explanation of the proximity assessment"
}

Consider:
- Same street/building = highest score
- Same neighborhood = high score
- Same city but different area = medium score
- Different cities in same region = low score
- Different countries = lowest score`

// EstimateProximity scores how close the two addresses are. Failures degrade
// to DefaultProximityScore so a flaky collaborator never excludes a
// specialist from matching.
func (a *OpenAIAnalyzer) EstimateProximity(ctx context.Context, patientAddress, specialistAddress string) Proximity {
	prompt := fmt.Sprintf(proximityPromptTemplate, patientAddress, specialistAddress)

	var prox Proximity
	if err := a.completeJSON(ctx, proximitySystemPrompt, prompt, &prox); err != nil {
		a.logger.Warn("proximity estimation failed, using permissive default",
			"error", err, "score", DefaultProximityScore)
		return Proximity{Score: DefaultProximityScore, DistanceCategory: "unknown"}
	}
	return prox
}

const recommendationSystemPrompt = "You are a supportive mental health advisor providing practical guidance."

const recommendationPromptTemplate = `Based on the following information, provide brief, actionable recommendations for the user:

Symptoms: %s
Clinical History: %s
Context: %s
Summary: %s
Primary issues: %s
Urgency level: %s
Matched specialist: %s - %s

Provide 3-4 brief recommendations on:
1. What to prepare before the first appointment
2. Self-care steps they can take now
3. What to expect from therapy with this specialist
4. When to seek immediate help (if urgency is high)

Keep it supportive, practical, and under 200 words.`

// GenerateRecommendations writes pre-appointment guidance, falling back to a
// generic supportive message when the collaborator fails.
func (a *OpenAIAnalyzer) GenerateRecommendations(ctx context.Context, req RecommendationRequest) string {
	urgency := req.UrgencyLevel
	if urgency == "" {
		urgency = "moderate"
	}
	prompt := fmt.Sprintf(recommendationPromptTemplate,
		req.Symptoms, req.ClinicalHistory, req.Context, req.Summary,
		strings.Join(req.PrimaryConcerns, ", "), urgency,
		req.SpecialistName, req.Expertise,
	)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recommendationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		a.logger.Warn("recommendation generation failed, using fallback text", "error", err)
		return FallbackRecommendation
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return FallbackRecommendation
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// completeJSON runs a JSON-mode completion and decodes the reply into out.
func (a *OpenAIAnalyzer) completeJSON(ctx context.Context, system, prompt string, out any) error {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("analyzer: empty completion response")
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("analyzer: decode completion: %w", err)
	}
	return nil
}
