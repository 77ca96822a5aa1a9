// Package ocr extracts text from images for providers that lack native
// image understanding.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes text in an image. lang is an ISO-ish language code
// as used by the translate API, not a tesseract tag.
type Engine interface {
	ExtractText(ctx context.Context, image []byte, lang string) (string, error)
}

// langTags maps translate-API language codes to tesseract language
// identifiers. Unknown codes and "auto" fall back to English.
var langTags = map[string]string{
	"EN": "eng",
	"ZH": "chi_sim",
	"JA": "jpn",
	"KO": "kor",
	"FR": "fra",
	"DE": "deu",
	"ES": "spa",
	"IT": "ita",
	"PT": "por",
	"RU": "rus",
	"AR": "ara",
	"NL": "nld",
	"PL": "pol",
	"TR": "tur",
}

// LangTag returns the tesseract language identifier for a translate-API
// language code, defaulting to English.
func LangTag(code string) string {
	if tag, ok := langTags[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return tag
	}
	return "eng"
}

// Ensure TesseractEngine implements Engine.
var _ Engine = (*TesseractEngine)(nil)

// TesseractEngine runs recognition through a gosseract client scoped to
// the call: the client is created per invocation and torn down
// unconditionally.
type TesseractEngine struct{}

// NewTesseractEngine creates a new tesseract-backed OCR engine.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// ExtractText recognizes text in the image. Failures in initialization
// or recognition are wrapped in an explicit OCR error so callers can
// tell them apart from provider failures.
func (e *TesseractEngine) ExtractText(ctx context.Context, image []byte, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(LangTag(lang)); err != nil {
		return "", fmt.Errorf("ocr initialization failed: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("ocr initialization failed: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr recognition failed: %w", err)
	}
	return text, nil
}
