package entity

// ExtractionSource tags which provider produced the text.
type ExtractionSource string

const (
	ExtractionSourcePrimary  ExtractionSource = "primary"
	ExtractionSourceFallback ExtractionSource = "fallback"
)

// RawDocument is the uploaded image content. It lives only for the duration of
// one extraction call and is never persisted.
type RawDocument struct {
	Content  []byte
	MimeType string
}

// ExtractedText is the output of the extraction engine. Confidence is only
// meaningful for the fallback OCR engine (0-100); the primary provider does
// not report one.
type ExtractedText struct {
	Text       string
	Source     ExtractionSource
	Confidence *float64
}
