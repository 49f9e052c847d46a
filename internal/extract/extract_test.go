package extract

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
	"github.com/aturs3001/ai-math-tutor/internal/llm"
)

// visionMock extends the standard mock with vision support so the image
// path can run without a real provider.
type visionMock struct {
	*llm.MockProvider
	lastImage llm.Image
}

func (v *visionMock) GenerateVision(ctx context.Context, req llm.Request, img llm.Image) (*llm.Response, error) {
	v.lastImage = img
	return v.Generate(ctx, req)
}

func TestImageMIMEType(t *testing.T) {
	tests := []struct {
		filename string
		mime     string
		ok       bool
	}{
		{"problem.png", "image/png", true},
		{"problem.jpg", "image/jpeg", true},
		{"problem.JPEG", "image/jpeg", true},
		{"problem.gif", "image/gif", true},
		{"problem.webp", "image/webp", true},
		{"problem.pdf", "", false},
		{"problem", "", false},
	}
	for _, tt := range tests {
		mime, ok := ImageMIMEType(tt.filename)
		if mime != tt.mime || ok != tt.ok {
			t.Errorf("ImageMIMEType(%q) = %q, %v; want %q, %v", tt.filename, mime, ok, tt.mime, tt.ok)
		}
	}
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"a.txt", "a.TXT", "a.png", "a.webp"} {
		if !Supported(name) {
			t.Errorf("Supported(%q) = false", name)
		}
	}
	for _, name := range []string{"a.pdf", "a.docx", "a"} {
		if Supported(name) {
			t.Errorf("Supported(%q) = true", name)
		}
	}
}

func TestFromFileTextPassthrough(t *testing.T) {
	e := NewExtractor(llm.NewMockProvider())

	text, err := e.FromFile(context.Background(), "problem.txt", []byte("  solve 2x + 3 = 7\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "solve 2x + 3 = 7" {
		t.Errorf("text = %q", text)
	}
}

func TestFromFileEmptyText(t *testing.T) {
	e := NewExtractor(llm.NewMockProvider())
	if _, err := e.FromFile(context.Background(), "problem.txt", []byte("  \n")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestFromFileUnsupportedType(t *testing.T) {
	e := NewExtractor(llm.NewMockProvider())
	_, err := e.FromFile(context.Background(), "problem.pdf", []byte("%PDF"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported-type error, got %v", err)
	}
}

func TestFromFileImage(t *testing.T) {
	mock := &visionMock{MockProvider: llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("```json\n{\"problem\": \"2x + 3 = 7\"}\n```"),
	})}
	e := NewExtractor(mock)

	text, err := e.FromFile(context.Background(), "photo.jpg", []byte{0xFF, 0xD8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "2x + 3 = 7" {
		t.Errorf("text = %q", text)
	}
	if mock.lastImage.MIMEType != "image/jpeg" {
		t.Errorf("mime = %q", mock.lastImage.MIMEType)
	}
	if mock.LastCall().Schema != extractSchema {
		t.Error("request did not carry the extraction schema")
	}
}

func TestFromFileImageWithoutVisionProvider(t *testing.T) {
	e := NewExtractor(llm.NewMockProvider())
	_, err := e.FromFile(context.Background(), "photo.png", []byte{1})
	if err == nil || !strings.Contains(err.Error(), "cannot read images") {
		t.Fatalf("expected vision-capability error, got %v", err)
	}
}

func TestFromFileImageBadTranscription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind fault.Kind
	}{
		{"not json", "sorry, I can't read that", fault.KindMalformedResponse},
		{"empty problem", `{"problem": "  "}`, fault.KindSchemaViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &visionMock{MockProvider: llm.NewMockProvider(llm.MockResponse{
				Content: json.RawMessage(tt.raw),
			})}
			e := NewExtractor(mock)
			_, err := e.FromFile(context.Background(), "photo.png", []byte{1})
			if !fault.Is(err, tt.kind) {
				t.Fatalf("kind = %v (err %v), want %v", fault.KindOf(err), err, tt.kind)
			}
		})
	}
}
