package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"linguahub-backend/internal/models"
)

// Ensure DeepLXAdapter implements the Translator interface.
var _ Translator = (*DeepLXAdapter)(nil)

// DeepLXAdapter talks to a self-hosted DeepLX translation endpoint.
// DeepLX has no image support; the orchestration layer runs OCR first
// and substitutes the extracted text when a request carries an image.
type DeepLXAdapter struct {
	httpClient *http.Client
}

// NewDeepLXAdapter creates a new DeepLX adapter.
func NewDeepLXAdapter(client *http.Client) *DeepLXAdapter {
	return &DeepLXAdapter{httpClient: client}
}

func (a *DeepLXAdapter) Name() models.Provider {
	return models.ProviderDeepLX
}

type deeplxRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type deeplxResponse struct {
	Code    int    `json:"code"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

// Translate posts the request to the configured DeepLX endpoint. A
// non-2xx response, or a 200 response whose payload code is not 200,
// is surfaced as a ProviderError carrying the upstream message.
func (a *DeepLXAdapter) Translate(ctx context.Context, creds models.ProviderCredentials, req models.TranslateRequest) (string, error) {
	endpoint := strings.TrimSpace(creds.DeepLXURL)
	if endpoint == "" {
		return "", NewConfigError("DeepLX endpoint")
	}

	body, err := json.Marshal(deeplxRequest{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		return "", err
	}

	result, err := Fetch(ctx, a.httpClient, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return "", err // cancellation only
	}

	var payload deeplxResponse
	if result.Text != "" {
		// Best effort; a non-JSON body leaves the zero payload and the
		// status check below reports the failure.
		_ = json.Unmarshal([]byte(result.Text), &payload)
	}

	if !result.OK || payload.Code != 200 {
		msg := payload.Message
		if msg == "" && payload.Code != 0 {
			msg = "DeepLX error code " + strconv.Itoa(payload.Code)
		}
		return "", &ProviderError{Provider: models.ProviderDeepLX, Status: result.Status, Message: msg}
	}

	return payload.Data, nil
}
