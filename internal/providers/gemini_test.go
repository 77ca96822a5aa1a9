package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linguahub-backend/internal/models"
)

func geminiStub(t *testing.T, respond func(w http.ResponseWriter), capture *geminiRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing key query parameter")
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		respond(w)
	}))
}

func geminiText(text string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
	}
}

func TestGeminiTranslate_MissingKey(t *testing.T) {
	adapter := NewGeminiAdapter(http.DefaultClient)
	_, err := adapter.Translate(context.Background(), models.ProviderCredentials{}, models.TranslateRequest{Text: "Hi"})
	if !IsConfigError(err) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGeminiTranslate_TextOnly(t *testing.T) {
	var captured geminiRequest
	server := geminiStub(t, geminiText("Hallo"), &captured)
	defer server.Close()

	adapter := NewGeminiAdapter(server.Client())
	creds := models.ProviderCredentials{GeminiAPIKey: "test-key", GeminiBaseURL: server.URL}

	text, err := adapter.Translate(context.Background(), creds, models.TranslateRequest{
		Text: "Hello", SourceLang: "EN", TargetLang: "DE", Model: "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if text != "Hallo" {
		t.Errorf("expected Hallo, got %q", text)
	}

	if captured.SystemInstruction == nil || len(captured.SystemInstruction.Parts) == 0 {
		t.Fatal("expected a system instruction")
	}
	if len(captured.Contents) != 1 || captured.Contents[0].Role != "user" {
		t.Fatalf("unexpected contents: %+v", captured.Contents)
	}
	if captured.Contents[0].Parts[0].Text != "Hello" {
		t.Errorf("unexpected user part: %+v", captured.Contents[0].Parts)
	}
	if captured.GenerationConfig.Temperature != translateTemperature {
		t.Errorf("expected temperature %v, got %v", translateTemperature, captured.GenerationConfig.Temperature)
	}
}

func TestGeminiTranslate_ImageStripsDataURI(t *testing.T) {
	var captured geminiRequest
	server := geminiStub(t, geminiText("ok"), &captured)
	defer server.Close()

	adapter := NewGeminiAdapter(server.Client())
	creds := models.ProviderCredentials{GeminiAPIKey: "test-key", GeminiBaseURL: server.URL}

	image := "data:image/jpeg;base64,aGVsbG8="
	_, err := adapter.Translate(context.Background(), creds, models.TranslateRequest{
		ImageBase64: &image, Model: "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	parts := captured.Contents[0].Parts
	if len(parts) != 1 {
		t.Fatalf("expected a single image part, got %d parts", len(parts))
	}
	if parts[0].InlineData == nil {
		t.Fatal("expected inline data in first part")
	}
	if parts[0].InlineData.MimeType != "image/jpeg" {
		t.Errorf("expected mime from data URI, got %q", parts[0].InlineData.MimeType)
	}
	if parts[0].InlineData.Data != "aGVsbG8=" {
		t.Errorf("expected raw base64, got %q", parts[0].InlineData.Data)
	}
}

func TestGeminiChat_AssistantMapsToModelRole(t *testing.T) {
	var captured geminiRequest
	server := geminiStub(t, geminiText("reply"), &captured)
	defer server.Close()

	adapter := NewGeminiAdapter(server.Client())
	creds := models.ProviderCredentials{GeminiAPIKey: "test-key", GeminiBaseURL: server.URL}

	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
		{Role: models.RoleUser, Content: "again"},
	}
	_, err := adapter.Chat(context.Background(), creds, "gemini-2.0-flash", "sys", messages, 0.5)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	roles := make([]string, 0, len(captured.Contents))
	for _, c := range captured.Contents {
		roles = append(roles, c.Role)
	}
	want := []string{"user", "model", "user"}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("expected roles %v, got %v", want, roles)
		}
	}
}

func TestGeminiGenerateGrounded_ParsesCitations(t *testing.T) {
	var captured geminiRequest
	server := geminiStub(t, func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{{"text": "Summary of topic."}}},
				"groundingMetadata": map[string]any{
					"groundingChunks": []map[string]any{
						{"web": map[string]any{"uri": "https://example.com/a", "title": "Source A"}},
						{},
						{"web": map[string]any{"uri": "https://example.com/b", "title": "Source B"}},
					},
				},
			}},
		})
	}, &captured)
	defer server.Close()

	adapter := NewGeminiAdapter(server.Client())
	creds := models.ProviderCredentials{GeminiAPIKey: "test-key", GeminiBaseURL: server.URL}

	result, err := adapter.GenerateGrounded(context.Background(), creds, "gemini-2.0-flash", "sys", "query")
	if err != nil {
		t.Fatalf("GenerateGrounded failed: %v", err)
	}
	if result.Text != "Summary of topic." {
		t.Errorf("unexpected text %q", result.Text)
	}
	if len(result.Citations) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(result.Citations))
	}
	if result.Citations[0].URI != "https://example.com/a" || result.Citations[0].Title != "Source A" {
		t.Errorf("unexpected first citation: %+v", result.Citations[0])
	}

	if len(captured.Tools) != 1 || captured.Tools[0].GoogleSearch == nil {
		t.Errorf("expected google_search tool in request: %+v", captured.Tools)
	}
}

func TestGeminiGenerate_HTTPErrorCarriesMessage(t *testing.T) {
	server := geminiStub(t, func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "key expired"}})
	}, nil)
	defer server.Close()

	adapter := NewGeminiAdapter(server.Client())
	creds := models.ProviderCredentials{GeminiAPIKey: "test-key", GeminiBaseURL: server.URL}

	_, err := adapter.Translate(context.Background(), creds, models.TranslateRequest{Text: "Hi", Model: "gemini-2.0-flash"})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.Status != http.StatusForbidden || pe.Message != "key expired" {
		t.Errorf("unexpected ProviderError: %+v", pe)
	}
}
