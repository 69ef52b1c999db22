package extract

import (
	"context"
	"strings"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/pkg/serverutils"
	"ai-medassist-be/pkg/ocr"
	"ai-medassist-be/pkg/vision"
)

// minTextLength is the threshold below which a provider response counts as a
// failed extraction rather than valid output.
const minTextLength = 5

// FallbackEngine is the local OCR contract, satisfied by ocr.Engine.
type FallbackEngine interface {
	Recognize(ctx context.Context, image []byte, progress ocr.ProgressFunc) (string, float64, error)
}

// Engine is the two-tier text extraction pipeline: a high-accuracy but
// unreliable vision provider first, then the local OCR engine. It returns a
// result unless both tiers fail or the image is genuinely unreadable.
type Engine struct {
	primary  vision.Transcriber
	fallback FallbackEngine
	log      logger.ILogger
}

func NewEngine(primary vision.Transcriber, fallback FallbackEngine, log logger.ILogger) *Engine {
	return &Engine{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

func (e *Engine) Extract(ctx context.Context, doc entity.RawDocument, progress ocr.ProgressFunc) (*entity.ExtractedText, error) {
	if !strings.HasPrefix(doc.MimeType, "image/") {
		return nil, serverutils.InvalidInput("uploaded file must be an image")
	}

	text, err := e.primary.Transcribe(ctx, doc.Content, doc.MimeType)
	if err == nil {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) >= minTextLength {
			return &entity.ExtractedText{
				Text:   trimmed,
				Source: entity.ExtractionSourcePrimary,
			}, nil
		}
		e.log.Warn("Extract", "Primary provider returned insufficient text", map[string]interface{}{
			"length": len(trimmed),
		})
	} else {
		e.log.Warn("Extract", "Primary provider failed, falling back to local OCR", map[string]interface{}{
			"error": err.Error(),
		})
	}

	fallbackText, confidence, err := e.fallback.Recognize(ctx, doc.Content, progress)
	if err != nil {
		return nil, serverutils.ExtractionFailed("could not read the prescription image, please retake the photo", err)
	}

	trimmed := strings.TrimSpace(fallbackText)
	if len(trimmed) < minTextLength {
		return nil, serverutils.ExtractionFailed("the image is likely unclear, please retake the photo", nil)
	}

	return &entity.ExtractedText{
		Text:       trimmed,
		Source:     entity.ExtractionSourceFallback,
		Confidence: &confidence,
	}, nil
}
