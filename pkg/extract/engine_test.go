package extract

import (
	"context"
	"errors"
	"testing"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/serverutils"
	"ai-medassist-be/pkg/ocr"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeOCR struct {
	text       string
	confidence float64
	err        error
	calls      int
}

func (f *fakeOCR) Recognize(ctx context.Context, image []byte, progress ocr.ProgressFunc) (string, float64, error) {
	f.calls++
	if progress != nil {
		progress(100)
	}
	return f.text, f.confidence, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func validDoc() entity.RawDocument {
	return entity.RawDocument{Content: []byte{0xFF, 0xD8}, MimeType: "image/jpeg"}
}

func TestExtractRejectsNonImageMime(t *testing.T) {
	engine := NewEngine(&fakeTranscriber{}, &fakeOCR{}, nopLogger{})

	_, err := engine.Extract(context.Background(), entity.RawDocument{MimeType: "application/pdf"}, nil)

	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != serverutils.KindInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestExtractPrimarySuccess(t *testing.T) {
	primary := &fakeTranscriber{text: "Paracetamol 500mg twice daily"}
	fallback := &fakeOCR{text: "should not be used"}
	engine := NewEngine(primary, fallback, nopLogger{})

	result, err := engine.Extract(context.Background(), validDoc(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Source != entity.ExtractionSourcePrimary {
		t.Errorf("Source = %q, want primary", result.Source)
	}
	if result.Confidence != nil {
		t.Errorf("primary result should carry no confidence, got %v", *result.Confidence)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback should not run when primary succeeds, got %d calls", fallback.calls)
	}
}

func TestExtractFallsBackOnPrimaryError(t *testing.T) {
	primary := &fakeTranscriber{err: errors.New("quota exceeded")}
	fallback := &fakeOCR{text: "Amoxicillin 250mg", confidence: 82.5}
	engine := NewEngine(primary, fallback, nopLogger{})

	result, err := engine.Extract(context.Background(), validDoc(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Source != entity.ExtractionSourceFallback {
		t.Errorf("Source = %q, want fallback", result.Source)
	}
	if result.Confidence == nil || *result.Confidence != 82.5 {
		t.Errorf("Confidence = %v, want 82.5", result.Confidence)
	}
}

func TestExtractFallsBackOnShortPrimaryText(t *testing.T) {
	primary := &fakeTranscriber{text: "  ab "}
	fallback := &fakeOCR{text: "Cetirizine 10mg at night", confidence: 70}
	engine := NewEngine(primary, fallback, nopLogger{})

	result, err := engine.Extract(context.Background(), validDoc(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != entity.ExtractionSourceFallback {
		t.Errorf("Source = %q, want fallback", result.Source)
	}
}

func TestExtractFailsWhenBothTiersInsufficient(t *testing.T) {
	primary := &fakeTranscriber{err: errors.New("backend down")}
	fallback := &fakeOCR{text: "a", confidence: 12}
	engine := NewEngine(primary, fallback, nopLogger{})

	_, err := engine.Extract(context.Background(), validDoc(), nil)

	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != serverutils.KindExtractionFailed {
		t.Fatalf("expected ExtractionFailed, got %v", err)
	}
}

func TestExtractReportsProgress(t *testing.T) {
	primary := &fakeTranscriber{err: errors.New("unavailable")}
	fallback := &fakeOCR{text: "Metformin 500mg after lunch", confidence: 90}
	engine := NewEngine(primary, fallback, nopLogger{})

	var seen []int
	_, err := engine.Extract(context.Background(), validDoc(), func(p int) { seen = append(seen, p) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) == 0 || seen[len(seen)-1] != 100 {
		t.Errorf("progress not reported to completion: %v", seen)
	}
}
