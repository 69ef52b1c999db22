package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// transcriptionInstruction keeps the model from paraphrasing the document.
// Unreadable spans are marked so the parser can skip them instead of
// ingesting hallucinated names.
const transcriptionInstruction = "Transcribe this prescription exactly as written. " +
	"Do not summarize, translate, or interpret. Mark any unreadable spans explicitly as [unreadable]."

type GeminiVision struct {
	apiKey string
	model  string
	client *http.Client
}

var _ Transcriber = &GeminiVision{}

func NewGeminiVision(apiKey, model string) *GeminiVision {
	return &GeminiVision{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiVisionPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiVisionContent struct {
	Parts []geminiVisionPart `json:"parts"`
}

type geminiVisionRequest struct {
	Contents []geminiVisionContent `json:"contents"`
}

type geminiVisionResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiVision) Transcribe(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	payload := geminiVisionRequest{
		Contents: []geminiVisionContent{
			{
				Parts: []geminiVisionPart{
					{Text: transcriptionInstruction},
					{
						InlineData: &geminiInlineData{
							MimeType: mimeType,
							Data:     base64.StdEncoding.EncodeToString(imageData),
						},
					},
				},
			},
		},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		g.model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var visionRes geminiVisionResponse
	if err := json.Unmarshal(resBody, &visionRes); err != nil {
		return "", err
	}

	if len(visionRes.Candidates) == 0 || len(visionRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates from gemini vision api")
	}

	return stripMarkup(visionRes.Candidates[0].Content.Parts[0].Text), nil
}

// stripMarkup removes markdown artifacts the model tends to wrap
// transcriptions in (fences, emphasis markers).
func stripMarkup(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "##", "")
	return strings.TrimSpace(text)
}
