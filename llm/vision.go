package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const visionModel = "gemini-2.0-flash"

// VisionClient transcribes scanned contracts through the Gemini vision model
type VisionClient struct {
	model *genai.GenerativeModel
}

// NewVisionClient creates a vision client on top of an existing genai client
func NewVisionClient(client *genai.Client) *VisionClient {
	return &VisionClient{model: client.GenerativeModel(visionModel)}
}

// Transcribe extracts the full text of an image or scanned PDF
func (v *VisionClient) Transcribe(ctx context.Context, mimeType string, data []byte, instruction string) (string, error) {
	resp, err := v.model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(instruction),
	)
	if err != nil {
		return "", fmt.Errorf("vision transcription failed: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyCompletion
	}

	return sb.String(), nil
}
