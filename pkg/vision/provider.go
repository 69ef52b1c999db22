package vision

import "context"

// Transcriber turns an image into raw text. Implementations may fail for any
// provider-side reason; callers own the fallback behavior.
type Transcriber interface {
	Transcribe(ctx context.Context, imageData []byte, mimeType string) (string, error)
}
