// Package extract pulls problem text out of uploaded files. Plain text
// files pass through directly; images go through a vision-capable model
// provider.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
	"github.com/aturs3001/ai-math-tutor/internal/llm"
	"github.com/aturs3001/ai-math-tutor/internal/repair"
)

// MaxUploadBytes caps accepted file uploads.
const MaxUploadBytes = 16 << 20

// imageMIMETypes maps supported image extensions to their MIME type.
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageMIMEType returns the MIME type for a supported image filename.
func ImageMIMEType(filename string) (string, bool) {
	mime, ok := imageMIMETypes[strings.ToLower(filepath.Ext(filename))]
	return mime, ok
}

// Supported reports whether the filename carries an extension the
// extractor can handle.
func Supported(filename string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		return true
	}
	_, ok := ImageMIMEType(filename)
	return ok
}

const extractSystemPrompt = `You are reading an image that contains one or more math problems.

Transcribe the math problem(s) exactly as written, using standard notation. Include all given values, conditions, and the question being asked. Transcribe only what is in the image; do not solve anything.

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "problem": "The transcribed problem text"
}`

// extractSchema steers the transcription into a single field.
var extractSchema = &llm.Schema{
	Name:        "extracted-problem",
	Description: "Math problem text transcribed from an image",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem": map[string]any{"type": "string"},
		},
		"required": []any{"problem"},
	},
}

// Extractor turns uploaded files into problem text.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates an extractor on top of a model provider. Image
// extraction requires the provider chain to end in a VisionProvider;
// text files work with any provider.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// FromFile extracts problem text from an uploaded file. Text files pass
// through as-is; images are transcribed by the vision model.
func (e *Extractor) FromFile(ctx context.Context, filename string, data []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("file %q is empty", filename)
		}
		return text, nil
	}

	mime, ok := ImageMIMEType(filename)
	if !ok {
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	return e.fromImage(ctx, mime, data)
}

func (e *Extractor) fromImage(ctx context.Context, mime string, data []byte) (string, error) {
	vp, ok := llm.AsVision(e.provider)
	if !ok {
		return "", fmt.Errorf("configured provider %q cannot read images", e.provider.ModelID())
	}

	ctx = llm.WithPurpose(ctx, "extract")
	resp, err := vp.GenerateVision(ctx, llm.Request{
		System:    extractSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Transcribe the math problem in this image."}},
		Schema:    extractSchema,
		MaxTokens: 1024,
	}, llm.Image{MIMEType: mime, Data: data})
	if err != nil {
		return "", fault.Upstream(err)
	}

	return parseProblem(string(resp.Content))
}

// parseProblem repairs and decodes the transcription response.
func parseProblem(raw string) (string, error) {
	text, err := repair.Repair(raw, repair.ShapeObject)
	if err != nil {
		return "", err
	}
	var out struct {
		Problem string `json:"problem"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fault.Malformed("transcription is not a JSON object", raw)
	}
	if strings.TrimSpace(out.Problem) == "" {
		return "", fault.SchemaViolation("problem", "must not be empty")
	}
	return out.Problem, nil
}
