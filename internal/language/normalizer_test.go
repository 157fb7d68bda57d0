package language

import (
	"context"
	"errors"
	"testing"

	lensErrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

const englishResume = `Jane Doe is a software engineer with ten years of experience
building distributed systems, leading teams, and mentoring junior developers.
She has worked extensively with databases, message queues, and cloud platforms.`

const spanishResume = `Jane Doe es una ingeniera de software con diez años de experiencia
construyendo sistemas distribuidos, liderando equipos y guiando a desarrolladores junior.
Ha trabajado extensamente con bases de datos, colas de mensajes y plataformas en la nube.`

type fakeTranslator struct {
	output types.TranslateOutput
	err    error
	calls  int
}

func (f *fakeTranslator) Translate(ctx context.Context, input types.TranslateInput) (types.TranslateOutput, error) {
	f.calls++
	return f.output, f.err
}

func testLogger() *lensErrors.Logger {
	logger, _ := lensErrors.New("error")
	return logger
}

func TestNormalizePassesThroughTargetLanguage(t *testing.T) {
	translator := &fakeTranslator{}
	n := New(translator, testLogger())

	result := n.Normalize(context.Background(), englishResume, "en")

	if result.Text != englishResume {
		t.Error("text must pass through unchanged when already in the target language")
	}
	if result.Detected != "en" {
		t.Errorf("expected detected language en, got %q", result.Detected)
	}
	if result.Translated || result.Degraded {
		t.Errorf("expected clean pass-through, got translated=%t degraded=%t", result.Translated, result.Degraded)
	}
	if translator.calls != 0 {
		t.Errorf("translator must not be called, got %d calls", translator.calls)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	translator := &fakeTranslator{}
	n := New(translator, testLogger())

	first := n.Normalize(context.Background(), englishResume, "en")
	second := n.Normalize(context.Background(), first.Text, "en")

	if second.Text != first.Text {
		t.Error("normalizing already-normalized text must not change it")
	}
	if translator.calls != 0 {
		t.Errorf("translator must not be called, got %d calls", translator.calls)
	}
}

func TestNormalizeTranslates(t *testing.T) {
	translator := &fakeTranslator{output: types.TranslateOutput{Text: "translated resume text"}}
	n := New(translator, testLogger())

	result := n.Normalize(context.Background(), spanishResume, "en")

	if translator.calls != 1 {
		t.Fatalf("expected one translation call, got %d", translator.calls)
	}
	if result.Text != "translated resume text" {
		t.Errorf("unexpected text: %q", result.Text)
	}
	if result.Detected != "es" {
		t.Errorf("expected detected language es, got %q", result.Detected)
	}
	if !result.Translated || result.Degraded {
		t.Errorf("expected translated=true degraded=false, got translated=%t degraded=%t", result.Translated, result.Degraded)
	}
}

func TestNormalizeDegradesOnTranslationFailure(t *testing.T) {
	tests := []struct {
		name       string
		translator *fakeTranslator
	}{
		{name: "translator error", translator: &fakeTranslator{err: errors.New("model unavailable")}},
		{name: "empty translation", translator: &fakeTranslator{output: types.TranslateOutput{Text: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.translator, testLogger())

			result := n.Normalize(context.Background(), spanishResume, "en")

			if result.Text != spanishResume {
				t.Error("original text must be kept on translation failure")
			}
			if !result.Degraded {
				t.Error("expected Degraded flag on translation failure")
			}
			if result.Translated {
				t.Error("Translated must be false on failure")
			}
		})
	}
}

func TestNormalizeEmptyText(t *testing.T) {
	translator := &fakeTranslator{}
	n := New(translator, testLogger())

	result := n.Normalize(context.Background(), "   \n ", "en")

	if result.Translated || result.Degraded {
		t.Errorf("blank input should be a no-op, got translated=%t degraded=%t", result.Translated, result.Degraded)
	}
	if translator.calls != 0 {
		t.Errorf("translator must not be called for blank input, got %d calls", translator.calls)
	}
}
