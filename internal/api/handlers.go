package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aturs3001/ai-math-tutor/internal/extract"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"model":  s.model,
		"features": []string{
			"step_by_step_solutions",
			"file_upload",
			"quiz_generation",
			"answer_evaluation",
			"study_sessions",
		},
	})
}

type solveRequest struct {
	Problem string `json:"problem"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Problem) == "" {
		writeBadRequest(w, "problem is required")
		return
	}

	sol, err := s.tutor.Solve(r.Context(), req.Problem)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sol)
}

func (s *Server) handleSolveFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeBadRequest(w, "file too large or malformed multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	if !extract.Supported(header.Filename) {
		writeBadRequest(w, "unsupported file type; use .txt, .png, .jpg, .jpeg, .gif, or .webp")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeBadRequest(w, "reading uploaded file failed")
		return
	}

	problem, err := s.extractor.FromFile(r.Context(), header.Filename, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sol, err := s.tutor.SolveDocument(r.Context(), problem)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sol)
}

type quizGenerateRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

func (s *Server) handleQuizGenerate(w http.ResponseWriter, r *http.Request) {
	var req quizGenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeBadRequest(w, "topic is required")
		return
	}

	quiz, err := s.tutor.GenerateQuiz(r.Context(), req.Topic, req.NumQuestions, req.Difficulty)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

type quizEvaluateRequest struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	StudentAnswer string `json:"student_answer"`
}

func (s *Server) handleQuizEvaluate(w http.ResponseWriter, r *http.Request) {
	var req quizEvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.Question == "" || req.CorrectAnswer == "" {
		writeBadRequest(w, "question and correct_answer are required")
		return
	}

	ev, err := s.tutor.EvaluateAnswer(r.Context(), req.Question, req.CorrectAnswer, req.StudentAnswer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type studyStartRequest struct {
	Problem string `json:"problem"`
}

func (s *Server) handleStudyStart(w http.ResponseWriter, r *http.Request) {
	var req studyStartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Problem) == "" {
		writeBadRequest(w, "problem is required")
		return
	}

	session, err := s.machine.Start(r.Context(), req.Problem)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleStudyGet(w http.ResponseWriter, r *http.Request) {
	session, err := s.machine.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleStudyEnd(w http.ResponseWriter, r *http.Request) {
	s.machine.End(chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

// stepRequest carries the 0-based index of the step being operated on.
type stepRequest struct {
	StepIndex int `json:"step_index"`
}

func (s *Server) handleStudyHint(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.machine.Hint(r.Context(), chi.URLParam(r, "sessionID"), req.StepIndex)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type checkRequest struct {
	StepIndex int    `json:"step_index"`
	Answer    string `json:"answer"`
}

func (s *Server) handleStudyCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeBadRequest(w, "answer is required")
		return
	}

	res, err := s.machine.Check(r.Context(), chi.URLParam(r, "sessionID"), req.StepIndex, req.Answer)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStudyReveal(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	res, err := s.machine.Reveal(r.Context(), chi.URLParam(r, "sessionID"), req.StepIndex)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeJSON parses a JSON request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errors.New("invalid JSON body")
	}
	return nil
}
