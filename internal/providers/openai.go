package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"linguahub-backend/internal/models"
)

// Ensure OpenAIAdapter implements the Translator interface.
var _ Translator = (*OpenAIAdapter)(nil)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// translateTemperature is the fixed sampling temperature for translation
// calls on every LLM-backed provider.
const translateTemperature = 0.3

// OpenAIAdapter talks to any OpenAI-compatible chat-completions endpoint.
type OpenAIAdapter struct {
	httpClient *http.Client
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter.
func NewOpenAIAdapter(client *http.Client) *OpenAIAdapter {
	return &OpenAIAdapter{httpClient: client}
}

func (a *OpenAIAdapter) Name() models.Provider {
	return models.ProviderOpenAI
}

// --- Wire types (OpenAI chat-completions) ---

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

// openAIMessage content is either a plain string or, when an image is
// attached, a slice of content parts.
type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NormalizeDataURI wraps a bare base64 payload into a PNG data URI;
// payloads that already are data URIs pass through unchanged.
func NormalizeDataURI(b64 string) string {
	if strings.HasPrefix(b64, "data:") {
		return b64
	}
	return "data:image/png;base64," + b64
}

// Translate builds an industry-aware instruction plus a user message
// combining text and, when present, an inlined image, and calls
// <baseUrl>/chat/completions. Returns the first choice's content,
// trimmed; empty string if absent.
func (a *OpenAIAdapter) Translate(ctx context.Context, creds models.ProviderCredentials, req models.TranslateRequest) (string, error) {
	if creds.OpenAIAPIKey == "" {
		return "", NewConfigError("OpenAI API key")
	}

	system := TranslateInstruction(req.SourceLang, req.TargetLang, req.Industry)

	var user openAIMessage
	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		parts := []openAIContentPart{
			{Type: "text", Text: req.Text},
			{Type: "image_url", ImageURL: &openAIImageURL{URL: NormalizeDataURI(*req.ImageBase64)}},
		}
		user = openAIMessage{Role: models.RoleUser, Content: parts}
	} else {
		user = openAIMessage{Role: models.RoleUser, Content: req.Text}
	}

	payload := openAIRequest{
		Model:       req.Model,
		Messages:    []openAIMessage{{Role: "system", Content: system}, user},
		Temperature: translateTemperature,
	}

	return a.complete(ctx, creds, payload)
}

// Chat sends a windowed conversation as a flat message list: one system
// message, then each message verbatim with role preserved. Content
// becomes [{text},{image_url}] when a message carries an image. The
// request honors ctx, so an in-flight call can be aborted; cancellation
// is returned as the context's error, never a ProviderError.
func (a *OpenAIAdapter) Chat(ctx context.Context, creds models.ProviderCredentials, model string, system string, messages []models.ChatMessage, temperature float64) (string, error) {
	if creds.OpenAIAPIKey == "" {
		return "", NewConfigError("OpenAI API key")
	}

	wire := make([]openAIMessage, 0, len(messages)+1)
	wire = append(wire, openAIMessage{Role: "system", Content: system})
	for _, m := range messages {
		if m.Image != nil && *m.Image != "" {
			parts := []openAIContentPart{
				{Type: "text", Text: m.Content},
				{Type: "image_url", ImageURL: &openAIImageURL{URL: NormalizeDataURI(*m.Image)}},
			}
			wire = append(wire, openAIMessage{Role: m.Role, Content: parts})
		} else {
			wire = append(wire, openAIMessage{Role: m.Role, Content: m.Content})
		}
	}

	payload := openAIRequest{Model: model, Messages: wire, Temperature: temperature}
	return a.complete(ctx, creds, payload)
}

func (a *OpenAIAdapter) complete(ctx context.Context, creds models.ProviderCredentials, payload openAIRequest) (string, error) {
	baseURL := strings.TrimRight(creds.OpenAIBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	headers := map[string]string{"Authorization": "Bearer " + creds.OpenAIAPIKey}
	result, err := Fetch(ctx, a.httpClient, http.MethodPost, baseURL+"/chat/completions", headers, body)
	if err != nil {
		return "", err // cancellation only
	}

	var resp openAIResponse
	if result.Text != "" {
		_ = json.Unmarshal([]byte(result.Text), &resp)
	}

	if !result.OK {
		msg := ""
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", &ProviderError{Provider: models.ProviderOpenAI, Status: result.Status, Message: msg}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
