package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNoInput is returned when neither a file nor pasted text was provided
	ErrNoInput = errors.New("no file or text provided")

	// ErrUnsupportedFileType is returned for uploads outside the allowlist
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUnreadableDocument is returned when no text could be extracted
	ErrUnreadableDocument = errors.New("could not extract text from document")
)

// AllowedMIMETypes is the upload allowlist, checked before any parsing
var AllowedMIMETypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"text/plain":      true,
}

const pdfOCRInstruction = `Extract ALL text from this scanned PDF document. Preserve the structure, headings, numbered clauses, and formatting. Extract every single clause verbatim. Return ONLY the extracted text.`

const imageOCRInstruction = `Extract ALL text from this image. Preserve the structure, headings, numbered clauses, and formatting as closely as possible.

If it's a legal document (contract, agreement, lease, offer letter, NDA), extract every single clause, term, and condition.
Do not summarize, extract the COMPLETE text verbatim.
If there are tables, preserve the table structure.
If text is in Hindi or regional language, extract in the original language.

Return ONLY the extracted text, nothing else.`

// VisionTranscriber extracts text from images and scanned PDFs
type VisionTranscriber interface {
	Transcribe(ctx context.Context, mimeType string, data []byte, instruction string) (string, error)
}

// IngestService turns uploaded contracts into plain text. PDFs go through
// local extraction first and fall back to vision OCR only when the PDF has
// no text layer.
type IngestService struct {
	vision VisionTranscriber
}

// NewIngestService creates a new ingest service
func NewIngestService(vision VisionTranscriber) *IngestService {
	return &IngestService{vision: vision}
}

// ExtractText extracts the plain text of an uploaded file
func (s *IngestService) ExtractText(ctx context.Context, mimeType string, data []byte) (string, error) {
	if !AllowedMIMETypes[mimeType] {
		return "", ErrUnsupportedFileType
	}

	switch mimeType {
	case "text/plain":
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", ErrUnreadableDocument
		}
		return text, nil

	case "application/pdf":
		return s.extractPDF(ctx, data)

	default:
		return s.transcribe(ctx, mimeType, data, imageOCRInstruction)
	}
}

func (s *IngestService) extractPDF(ctx context.Context, data []byte) (string, error) {
	text, err := extractPDFText(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	if strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}

	// No text layer, likely a scanned PDF
	return s.transcribe(ctx, "application/pdf", data, pdfOCRInstruction)
}

func (s *IngestService) transcribe(ctx context.Context, mimeType string, data []byte, instruction string) (string, error) {
	text, err := s.vision.Transcribe(ctx, mimeType, data, instruction)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrUnreadableDocument
	}
	return strings.TrimSpace(text), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", err
	}

	return buf.String(), nil
}
