package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"linguahub-backend/internal/models"
	"linguahub-backend/internal/ocr"
	"linguahub-backend/internal/providers"

	"github.com/google/uuid"
)

// TranslateService dispatches canonical translate requests to the
// matching provider adapter, running the OCR fallback for providers
// without image support, and records successful translations into the
// history.
type TranslateService struct {
	registry  *providers.Registry
	ocrEngine ocr.Engine
	creds     *CredentialsService
	history   *HistoryService
}

// NewTranslateService creates a new TranslateService.
func NewTranslateService(registry *providers.Registry, ocrEngine ocr.Engine, creds *CredentialsService, history *HistoryService) *TranslateService {
	return &TranslateService{
		registry:  registry,
		ocrEngine: ocrEngine,
		creds:     creds,
		history:   history,
	}
}

// Translate performs one canonical translation.
//
// DeepLX has no image understanding: when a DeepLX request carries an
// image and no text, OCR runs first with the request's source language
// and its output substitutes the text. A whitespace-only OCR result
// short-circuits to an empty translation without any provider call.
// OCR failure propagates, since it blocks the only path to translatable
// text.
func (s *TranslateService) Translate(ctx context.Context, req models.TranslateRequest) (string, error) {
	if req.Provider == models.ProviderDeepLX && req.ImageBase64 != nil && strings.TrimSpace(req.Text) == "" {
		extracted, err := s.extractImageText(ctx, *req.ImageBase64, req.SourceLang)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(extracted) == "" {
			return "", nil
		}
		req.Text = extracted
	}

	adapter, err := s.registry.Get(req.Provider)
	if err != nil {
		return "", err
	}

	translated, err := adapter.Translate(ctx, s.creds.Snapshot(), req)
	if err != nil {
		return "", err
	}

	if s.history != nil && strings.TrimSpace(translated) != "" {
		rec := models.TranslationRecord{
			ID:             uuid.New(),
			SourceText:     req.Text,
			TranslatedText: translated,
			SourceLang:     req.SourceLang,
			TargetLang:     req.TargetLang,
			Provider:       req.Provider,
			CreatedAt:      time.Now(),
		}
		// History is best effort; a storage hiccup must not fail the
		// translation itself.
		if err := s.history.Record(ctx, rec); err != nil {
			log.Printf("WARN [TranslateService] Failed to record history entry: %v", err)
		}
	}

	return translated, nil
}

func (s *TranslateService) extractImageText(ctx context.Context, imageBase64, sourceLang string) (string, error) {
	payload := imageBase64
	if idx := strings.Index(payload, ","); strings.HasPrefix(payload, "data:") && idx >= 0 {
		payload = payload[idx+1:]
	}
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid image payload: %w", err)
	}
	return s.ocrEngine.ExtractText(ctx, image, sourceLang)
}
