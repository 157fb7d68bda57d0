// Package language detects the language of extracted resume text and
// normalizes it to the configured target language before analysis.
// Normalization never fails a run: any detection or translation problem
// falls back to the original text with the Degraded flag set.
package language

import (
	"context"
	"strings"

	lensErrors "resumelens/internal/errors"
	"resumelens/internal/types"

	"github.com/abadojack/whatlanggo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Translator is the slice of the AI service the normalizer needs
type Translator interface {
	Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, error)
}

// Result holds the normalized text and what happened to produce it
type Result struct {
	Text       string `json:"text"`
	Detected   string `json:"detected,omitempty"` // ISO 639-1 code, empty when detection was unreliable
	Translated bool   `json:"translated"`
	Degraded   bool   `json:"degraded,omitempty"`
}

// Normalizer detects and translates resume text
type Normalizer struct {
	translator Translator
	logger     *lensErrors.Logger
}

// New creates a normalizer backed by the given translator
func New(translator Translator, logger *lensErrors.Logger) *Normalizer {
	return &Normalizer{
		translator: translator,
		logger:     logger,
	}
}

// Normalize returns text in the target language. Already-normalized input
// passes through unchanged, so the operation is idempotent.
func (n *Normalizer) Normalize(ctx context.Context, text, target string) Result {
	tracer := otel.Tracer("resumelens.language")
	ctx, span := tracer.Start(ctx, "language.normalize")
	defer span.End()

	span.SetAttributes(
		attribute.String("language.target", target),
		attribute.Int("input.text_length", len(text)),
	)

	result := Result{Text: text}

	if strings.TrimSpace(text) == "" {
		return result
	}

	info := whatlanggo.Detect(text)
	detected := info.Lang.Iso6391()
	if !info.IsReliable() || detected == "" {
		n.logger.Warn("Language detection unreliable, keeping original text",
			"confidence", info.Confidence)
		result.Degraded = true
		span.SetAttributes(attribute.Bool("language.degraded", true))
		return result
	}

	result.Detected = detected
	span.SetAttributes(attribute.String("language.detected", detected))

	if detected == target {
		return result
	}

	out, err := n.translator.Translate(ctx, types.TranslateInput{
		Text:           text,
		SourceLanguage: detected,
		TargetLanguage: target,
	})
	if err != nil || strings.TrimSpace(out.Text) == "" {
		if err != nil {
			n.logger.LogError(err, "Translation failed, keeping original text",
				"detected", detected,
				"target", target)
		} else {
			n.logger.Warn("Translation returned no text, keeping original",
				"detected", detected,
				"target", target)
		}
		result.Degraded = true
		span.SetAttributes(attribute.Bool("language.degraded", true))
		return result
	}

	result.Text = out.Text
	result.Translated = true
	span.SetAttributes(attribute.Bool("language.translated", true))
	return result
}
