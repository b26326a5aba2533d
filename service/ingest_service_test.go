package service

import (
	"context"
	"errors"
	"testing"
)

type fakeVision struct {
	text        string
	err         error
	calls       int
	gotMIME     string
	gotInstruct string
}

func (f *fakeVision) Transcribe(ctx context.Context, mimeType string, data []byte, instruction string) (string, error) {
	f.calls++
	f.gotMIME = mimeType
	f.gotInstruct = instruction
	return f.text, f.err
}

func TestExtractTextRejectsUnsupportedTypes(t *testing.T) {
	vision := &fakeVision{}
	svc := NewIngestService(vision)

	for _, mime := range []string{"application/msword", "video/mp4", "application/zip", ""} {
		_, err := svc.ExtractText(context.Background(), mime, []byte("data"))
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("MIME %q: expected ErrUnsupportedFileType, got %v", mime, err)
		}
	}

	if vision.calls != 0 {
		t.Errorf("Rejection must happen before any OCR call, got %d calls", vision.calls)
	}
}

func TestExtractTextPlainText(t *testing.T) {
	svc := NewIngestService(&fakeVision{})

	text, err := svc.ExtractText(context.Background(), "text/plain", []byte("  THIS RENTAL AGREEMENT  \n"))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "THIS RENTAL AGREEMENT" {
		t.Errorf("Expected trimmed text, got %q", text)
	}
}

func TestExtractTextEmptyPlainText(t *testing.T) {
	svc := NewIngestService(&fakeVision{})

	_, err := svc.ExtractText(context.Background(), "text/plain", []byte("   \n\t"))
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Errorf("Expected ErrUnreadableDocument, got %v", err)
	}
}

func TestExtractTextImageUsesOCR(t *testing.T) {
	vision := &fakeVision{text: "EMPLOYMENT AGREEMENT\nClause 1..."}
	svc := NewIngestService(vision)

	text, err := svc.ExtractText(context.Background(), "image/png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "EMPLOYMENT AGREEMENT\nClause 1..." {
		t.Errorf("Unexpected OCR text: %q", text)
	}
	if vision.gotMIME != "image/png" {
		t.Errorf("Expected image/png passed through, got %q", vision.gotMIME)
	}
	if vision.gotInstruct != imageOCRInstruction {
		t.Error("Expected the image OCR instruction")
	}
}

func TestExtractTextOCRFailure(t *testing.T) {
	tests := []struct {
		name   string
		vision *fakeVision
	}{
		{"transcriber error", &fakeVision{err: errors.New("quota exceeded")}},
		{"blank transcript", &fakeVision{text: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewIngestService(tt.vision)
			_, err := svc.ExtractText(context.Background(), "image/jpeg", []byte("jpg"))
			if !errors.Is(err, ErrUnreadableDocument) {
				t.Errorf("Expected ErrUnreadableDocument, got %v", err)
			}
		})
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	vision := &fakeVision{}
	svc := NewIngestService(vision)

	// Not a PDF at all, local extraction fails before any OCR fallback
	_, err := svc.ExtractText(context.Background(), "application/pdf", []byte("plainly not a pdf"))
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Errorf("Expected ErrUnreadableDocument, got %v", err)
	}
	if vision.calls != 0 {
		t.Error("Corrupt PDF must not reach the OCR fallback")
	}
}
