package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"linguahub-backend/internal/models"
)

// Ensure GeminiAdapter implements the Translator interface.
var _ Translator = (*GeminiAdapter)(nil)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdapter talks to the Gemini generate-content API over raw HTTP.
// The adapter is stateless: credentials are read per call, so a
// configuration update is picked up by the very next request.
type GeminiAdapter struct {
	httpClient *http.Client
}

// NewGeminiAdapter creates a new Gemini adapter.
func NewGeminiAdapter(client *http.Client) *GeminiAdapter {
	return &GeminiAdapter{httpClient: client}
}

func (a *GeminiAdapter) Name() models.Provider {
	return models.ProviderGemini
}

// --- Wire types (generateContent) ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	Tools             []geminiTool           `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GroundedResult is the outcome of a generation call with web grounding
// enabled: the synthesized text plus the platform-provided citations.
type GroundedResult struct {
	Text      string
	Citations []models.Source
}

// imagePart strips any data-URI prefix so only the raw base64 payload is
// inlined, as the API requires.
func imagePart(b64 string) geminiPart {
	mime := "image/png"
	if strings.HasPrefix(b64, "data:") {
		if rest, ok := strings.CutPrefix(b64, "data:"); ok {
			if semi := strings.Index(rest, ";"); semi > 0 {
				mime = rest[:semi]
			}
			if comma := strings.Index(rest, ","); comma >= 0 {
				b64 = rest[comma+1:]
			}
		}
	}
	return geminiPart{InlineData: &geminiInlineData{MimeType: mime, Data: b64}}
}

// Translate builds a multi-part content payload (inline image plus text,
// or a single space when both are absent) and issues one
// generate-content call at the fixed translation temperature.
func (a *GeminiAdapter) Translate(ctx context.Context, creds models.ProviderCredentials, req models.TranslateRequest) (string, error) {
	if creds.GeminiAPIKey == "" {
		return "", NewConfigError("Gemini API key")
	}

	var parts []geminiPart
	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		parts = append(parts, imagePart(*req.ImageBase64))
	}
	if req.Text != "" {
		parts = append(parts, geminiPart{Text: req.Text})
	}
	if len(parts) == 0 {
		parts = append(parts, geminiPart{Text: " "})
	}

	system := TranslateInstruction(req.SourceLang, req.TargetLang, req.Industry)
	resp, err := a.generate(ctx, creds, req.Model, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig:  geminiGenerationConfig{Temperature: translateTemperature},
	})
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// Chat seeds a conversation from mapped history (assistant turns become
// the "model" role) and sends the final message's parts as the new turn.
func (a *GeminiAdapter) Chat(ctx context.Context, creds models.ProviderCredentials, model, system string, messages []models.ChatMessage, temperature float64) (string, error) {
	if creds.GeminiAPIKey == "" {
		return "", NewConfigError("Gemini API key")
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("gemini chat requires at least one message")
	}

	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		var parts []geminiPart
		if m.Image != nil && *m.Image != "" {
			parts = append(parts, imagePart(*m.Image))
		}
		parts = append(parts, geminiPart{Text: m.Content})
		contents = append(contents, geminiContent{Role: role, Parts: parts})
	}

	resp, err := a.generate(ctx, creds, model, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          contents,
		GenerationConfig:  geminiGenerationConfig{Temperature: temperature},
	})
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// GenerateGrounded issues one generation call with the google_search
// tool enabled and returns the synthesized text together with the
// grounding citations the platform attached.
func (a *GeminiAdapter) GenerateGrounded(ctx context.Context, creds models.ProviderCredentials, model, system, prompt string) (*GroundedResult, error) {
	if creds.GeminiAPIKey == "" {
		return nil, NewConfigError("Gemini API key")
	}

	resp, err := a.generate(ctx, creds, model, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig:  geminiGenerationConfig{Temperature: translateTemperature},
		Tools:             []geminiTool{{GoogleSearch: &struct{}{}}},
	})
	if err != nil {
		return nil, err
	}

	result := &GroundedResult{Text: responseText(resp)}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			result.Citations = append(result.Citations, models.Source{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return result, nil
}

func (a *GeminiAdapter) generate(ctx context.Context, creds models.ProviderCredentials, model string, payload geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(creds.GeminiBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, model, creds.GeminiAPIKey)
	result, err := Fetch(ctx, a.httpClient, http.MethodPost, url, nil, body)
	if err != nil {
		return nil, err // cancellation only
	}

	var resp geminiResponse
	if result.Text != "" {
		_ = json.Unmarshal([]byte(result.Text), &resp)
	}

	if !result.OK {
		msg := ""
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return nil, &ProviderError{Provider: models.ProviderGemini, Status: result.Status, Message: msg}
	}
	return &resp, nil
}

// responseText extracts the first candidate's concatenated text parts,
// empty string when the response carries none.
func responseText(resp *geminiResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
