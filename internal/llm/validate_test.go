package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var hintSchema = &Schema{
	Name:        "test-hint",
	Description: "A single hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{"type": "string"},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	if err := validateResponse(hintSchema, json.RawMessage(`{"hint":"isolate x"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingField(t *testing.T) {
	err := validateResponse(hintSchema, json.RawMessage(`{"note":"wrong"}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	err := validateResponse(hintSchema, json.RawMessage(`hello`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}
