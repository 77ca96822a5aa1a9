package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linguahub-backend/internal/models"
)

func openAIStub(t *testing.T, reply string, capture *openAIRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"` + reply + `"}}]}`))
	}))
}

func TestOpenAITranslate_MissingKey(t *testing.T) {
	adapter := NewOpenAIAdapter(http.DefaultClient)
	_, err := adapter.Translate(context.Background(), models.ProviderCredentials{}, models.TranslateRequest{Text: "Hi"})
	if !IsConfigError(err) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestOpenAITranslate_TextOnly(t *testing.T) {
	var captured openAIRequest
	server := openAIStub(t, "  Bonjour  ", &captured)
	defer server.Close()

	adapter := NewOpenAIAdapter(server.Client())
	creds := models.ProviderCredentials{OpenAIAPIKey: "test-key", OpenAIBaseURL: server.URL}

	text, err := adapter.Translate(context.Background(), creds, models.TranslateRequest{
		Text: "Hello", SourceLang: "EN", TargetLang: "FR", Model: "gpt-4o-mini", Industry: "Legal",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if text != "Bonjour" {
		t.Errorf("expected trimmed reply, got %q", text)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model %q", captured.Model)
	}
	if captured.Temperature != translateTemperature {
		t.Errorf("expected temperature %v, got %v", translateTemperature, captured.Temperature)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(captured.Messages))
	}
	system, ok := captured.Messages[0].Content.(string)
	if !ok || !strings.Contains(system, "Legal") {
		t.Errorf("system instruction missing industry context: %v", captured.Messages[0].Content)
	}
	if captured.Messages[1].Content != "Hello" {
		t.Errorf("unexpected user content: %v", captured.Messages[1].Content)
	}
}

func TestOpenAITranslate_ImageBecomesDataURIPart(t *testing.T) {
	var captured openAIRequest
	server := openAIStub(t, "done", &captured)
	defer server.Close()

	adapter := NewOpenAIAdapter(server.Client())
	creds := models.ProviderCredentials{OpenAIAPIKey: "test-key", OpenAIBaseURL: server.URL}

	image := "aGVsbG8="
	_, err := adapter.Translate(context.Background(), creds, models.TranslateRequest{
		Text: "caption", ImageBase64: &image, Model: "gpt-4o",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	parts, ok := captured.Messages[1].Content.([]any)
	if !ok || len(parts) != 2 {
		t.Fatalf("expected 2 content parts, got %v", captured.Messages[1].Content)
	}
	imgPart, ok := parts[1].(map[string]any)
	if !ok {
		t.Fatalf("unexpected part shape: %v", parts[1])
	}
	imageURL, _ := imgPart["image_url"].(map[string]any)
	if url, _ := imageURL["url"].(string); url != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("expected bare base64 wrapped in a data URI, got %q", url)
	}
}

func TestOpenAIChat_FlatMessageList(t *testing.T) {
	var captured openAIRequest
	server := openAIStub(t, "sure", &captured)
	defer server.Close()

	adapter := NewOpenAIAdapter(server.Client())
	creds := models.ProviderCredentials{OpenAIAPIKey: "test-key", OpenAIBaseURL: server.URL}

	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
		{Role: models.RoleUser, Content: "how are you"},
	}
	_, err := adapter.Chat(context.Background(), creds, "gpt-4o", "be brief", messages, 0.7)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if len(captured.Messages) != 4 {
		t.Fatalf("expected system + 3 messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "be brief" {
		t.Errorf("unexpected system message: %+v", captured.Messages[0])
	}
	if captured.Messages[2].Role != models.RoleAssistant {
		t.Errorf("assistant role must be preserved, got %q", captured.Messages[2].Role)
	}
	if captured.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", captured.Temperature)
	}
}

func TestNormalizeDataURI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare base64", "aGVsbG8=", "data:image/png;base64,aGVsbG8="},
		{"existing data uri", "data:image/jpeg;base64,aGVsbG8=", "data:image/jpeg;base64,aGVsbG8="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDataURI(tt.in); got != tt.want {
				t.Errorf("NormalizeDataURI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
