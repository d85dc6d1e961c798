package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type PatientFile struct {
	PatientInfo     string `json:"patient_info"`
	Symptoms        string `json:"symptoms"`
	ClinicalHistory string `json:"clinical_history"`
	Context         string `json:"context"`
	TimePreference  string `json:"time_preference"`
}

type sessionResponse struct {
	SessionID string          `json:"session_id"`
	State     string          `json:"state"`
	Response  string          `json:"response"`
	Report    json.RawMessage `json:"report,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/demo-intake.go <patient-file.json>")
		os.Exit(1)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("❌ Error reading file: %v\n", err)
		os.Exit(1)
	}

	var patient PatientFile
	if err := json.Unmarshal(data, &patient); err != nil {
		fmt.Printf("❌ Error parsing JSON: %v\n", err)
		os.Exit(1)
	}
	if patient.TimePreference == "" {
		patient.TimePreference = "morning"
	}

	fmt.Printf("🏥 Intake Demo\n")
	fmt.Printf("============================\n")
	fmt.Printf("API URL: %s\n\n", apiURL)

	ctx := context.Background()
	client := &http.Client{Timeout: 60 * time.Second}

	fmt.Println("📋 Starting intake session...")
	session, err := post(ctx, client, apiURL+"/intake/sessions", map[string]any{})
	if err != nil {
		fmt.Printf("❌ Error starting session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   ✅ Session %s\n   🤖 %s\n\n", session.SessionID, session.Response)

	messages := []string{
		patient.PatientInfo,
		patient.Symptoms,
		patient.ClinicalHistory,
		patient.Context,
	}
	base := fmt.Sprintf("%s/intake/sessions/%s", apiURL, session.SessionID)

	for i, msg := range messages {
		fmt.Printf("💬 Message %d/%d\n", i+1, len(messages))
		resp, err := post(ctx, client, base+"/messages", map[string]any{"message": msg})
		if err != nil {
			fmt.Printf("   ❌ Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("   🤖 %s\n\n", resp.Response)
		if len(resp.Report) > 0 {
			fmt.Printf("📄 Specialist report:\n%s\n\n", resp.Report)
		}
	}

	fmt.Printf("📅 Scheduling (%s)...\n", patient.TimePreference)
	if err := postRaw(ctx, client, base+"/schedule", map[string]any{"time_preference": patient.TimePreference}); err != nil {
		fmt.Printf("   ❌ Error scheduling: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("   ✅ Booking prepared")

	fmt.Println("✉️  Confirming...")
	if err := postRaw(ctx, client, base+"/confirm", map[string]any{}); err != nil {
		fmt.Printf("   ❌ Error confirming: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Appointment confirmed!\n")
}

func post(ctx context.Context, client *http.Client, url string, payload any) (*sessionResponse, error) {
	body, err := send(ctx, client, url, payload)
	if err != nil {
		return nil, err
	}
	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

func postRaw(ctx context.Context, client *http.Client, url string, payload any) error {
	body, err := send(ctx, client, url, payload)
	if err != nil {
		return err
	}
	fmt.Printf("   %s\n", bytes.TrimSpace(body))
	return nil
}

func send(ctx context.Context, client *http.Client, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}
