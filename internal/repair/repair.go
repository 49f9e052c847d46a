// Package repair turns raw model output into parseable JSON text.
//
// Models are instructed to emit bare JSON, but in practice wrap it in
// markdown fences, surround it with prose, leave trailing commas, or
// over-escape LaTeX backslashes. Repair applies a fixed sequence of
// heuristics and either yields text that parses as the requested shape
// or a MalformedResponse fault carrying an excerpt of the original.
//
// Repair is a fixed point on clean input: repairing already-repaired
// text returns it unchanged.
package repair

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
)

// Shape is the structural form the repaired text must parse as.
type Shape int

const (
	// ShapeObject expects a brace-delimited JSON object.
	ShapeObject Shape = iota
	// ShapeList expects a bracket-delimited JSON array.
	ShapeList
)

func (s Shape) delims() (open, close byte) {
	if s == ShapeList {
		return '[', ']'
	}
	return '{', '}'
}

const fence = "```"

// trailingComma matches a comma (plus whitespace) immediately before a
// closing delimiter.
var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// backslashRun matches three or more consecutive backslashes. Lone
// backslashes and doubled backslashes (the JSON escape for a literal
// backslash) are left alone; longer runs are transport-layer escaping
// artifacts. They collapse to a doubled backslash, which decodes to a
// single backslash in the field value, so LaTeX like \frac survives.
var backslashRun = regexp.MustCompile(`\\{3,}`)

// Repair applies the repair sequence to raw model text. Each step is
// skipped when not applicable. If the result still does not parse as
// the requested shape, it returns a MalformedResponse fault carrying
// the first 200 characters of the original raw text.
func Repair(raw string, shape Shape) (string, error) {
	text := extractFenced(raw)
	text = strings.TrimSpace(text)
	text = sliceDelimited(text, shape)
	text = stripTrailingCommas(text)
	text = collapseBackslashRuns(text)

	open, _ := shape.delims()
	if len(text) == 0 || text[0] != open || !json.Valid([]byte(text)) {
		return "", fault.Malformed("response is not valid "+shapeName(shape), raw)
	}
	return text, nil
}

func shapeName(s Shape) string {
	if s == ShapeList {
		return "JSON array"
	}
	return "JSON object"
}

// extractFenced returns the innermost fenced content when the text
// contains a complete fence pair, discarding surrounding prose. An
// optional language tag on the opening fence is dropped. Text without
// a complete pair is returned unchanged.
func extractFenced(s string) string {
	for {
		start := strings.Index(s, fence)
		if start < 0 {
			return s
		}
		body := s[start+len(fence):]
		body = stripLanguageTag(body)

		end := strings.Index(body, fence)
		if end < 0 {
			return s
		}
		s = body[:end]
	}
}

// stripLanguageTag drops a bare annotation like "json" directly after
// an opening fence. Only a first line consisting of tag characters is
// removed; anything else is content.
func stripLanguageTag(s string) string {
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	tag := strings.TrimSpace(s[:nl])
	for _, r := range tag {
		if !isTagRune(r) {
			return s
		}
	}
	return s[nl+1:]
}

func isTagRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '+':
		return true
	}
	return false
}

// sliceDelimited performs the best-effort extraction: when the text
// does not already start and end with the shape's delimiters, slice
// from the first opener to the last closer.
func sliceDelimited(s string, shape Shape) string {
	open, close := shape.delims()
	if len(s) > 0 && s[0] == open && s[len(s)-1] == close {
		return s
	}
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start < 0 || end < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// stripTrailingCommas removes commas immediately preceding a closing
// delimiter, repeating until stable so stacked commas cannot survive.
func stripTrailingCommas(s string) string {
	for {
		out := trailingComma.ReplaceAllString(s, "$1")
		if out == s {
			return out
		}
		s = out
	}
}

// collapseBackslashRuns collapses runs of three or more backslashes.
// Applying it twice produces the same result as applying it once: the
// output contains no run longer than two.
func collapseBackslashRuns(s string) string {
	if !strings.Contains(s, `\\\`) {
		return s
	}
	return backslashRun.ReplaceAllString(s, `\\`)
}
