package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
)

// errorBody is the JSON error envelope returned on every failure.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// statusForKind maps fault kinds to HTTP status codes. Model-side
// failures are the gateway's fault (502), guard failures are the
// caller's (404/409/429).
func statusForKind(kind fault.Kind) int {
	switch kind {
	case fault.KindMalformedResponse, fault.KindSchemaViolation, fault.KindUpstreamError:
		return http.StatusBadGateway
	case fault.KindSessionNotFound:
		return http.StatusNotFound
	case fault.KindStepOutOfRange:
		return http.StatusConflict
	case fault.KindHintBudgetExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the JSON error envelope with the status
// its fault kind maps to.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var f *fault.Fault
	if !errors.As(err, &f) {
		s.logger.ErrorContext(r.Context(), "unclassified error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Kind: "internal_error", Message: "internal error"},
		})
		return
	}

	status := statusForKind(f.Kind)
	if status >= 500 {
		s.logger.ErrorContext(r.Context(), "request failed",
			"kind", string(f.Kind), "error", err)
	} else {
		s.logger.InfoContext(r.Context(), "request rejected",
			"kind", string(f.Kind), "status", status)
	}

	writeJSON(w, status, errorBody{
		Error: errorDetail{Kind: string(f.Kind), Message: f.Message},
	})
}

// writeBadRequest rejects malformed client input with a 400.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error: errorDetail{Kind: "bad_request", Message: msg},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response", "error", err)
	}
}
