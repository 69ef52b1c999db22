package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ProgressFunc receives coarse recognition progress in the range 0-100.
// Tesseract does not expose fine-grained progress through the binding, so the
// engine reports stage boundaries; enough to drive a UI progress bar.
type ProgressFunc func(percent int)

// Engine wraps a local Tesseract instance. Unlike the hosted vision provider
// it is deterministic and always available, which is what makes it a usable
// last resort.
type Engine struct {
	tessdataPrefix string
	language       string
}

func NewEngine(tessdataPrefix string) *Engine {
	return &Engine{
		tessdataPrefix: tessdataPrefix,
		language:       "eng",
	}
}

// Recognize runs OCR over the image. The returned confidence is the mean
// word-level confidence reported by Tesseract (0-100).
func (e *Engine) Recognize(ctx context.Context, image []byte, progress ProgressFunc) (string, float64, error) {
	if progress == nil {
		progress = func(int) {}
	}

	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	progress(5)

	client := gosseract.NewClient()
	defer client.Close()

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return "", 0, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(e.language); err != nil {
		return "", 0, fmt.Errorf("set language: %w", err)
	}
	// Prescriptions are a single column of mixed printed/handwritten lines;
	// single-block segmentation keeps Tesseract from inventing layout.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", 0, fmt.Errorf("set page seg mode: %w", err)
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", 0, fmt.Errorf("set image: %w", err)
	}
	progress(30)

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("recognize text: %w", err)
	}
	progress(80)

	confidence := e.meanConfidence(client)
	progress(100)

	return strings.TrimSpace(text), confidence, nil
}

func (e *Engine) meanConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}

	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	return total / float64(len(boxes))
}
