// Package study implements guided study sessions: a problem is
// decomposed into ordered steps and the student works through them one
// at a time with hints, answer checks, and reveals.
package study

import (
	"time"

	"github.com/aturs3001/ai-math-tutor/internal/tutor"
)

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusInProgress: the session is open and the student is working.
	StatusInProgress Status = "in_progress"

	// StatusCompleted: the final step was answered correctly.
	StatusCompleted Status = "completed"
)

// StepState is the per-step progress marker.
type StepState string

const (
	StepPending   StepState = "pending"
	StepCorrect   StepState = "correct"
	StepIncorrect StepState = "incorrect"
	StepRevealed  StepState = "revealed"
)

// MaxHintsPerStep bounds the hints a single step may issue.
const MaxHintsPerStep = 3

// Step is one objective in a session, tracked with its progress.
type Step struct {
	Index     int       `json:"step_index"`
	Objective string    `json:"objective"`
	State     StepState `json:"state"`
	HintsUsed int       `json:"hints_used"`
	Attempts  int       `json:"attempts"`
}

// Session is a guided study session. Steps are indexed from 0 and
// worked strictly in order; Current is the index of the step being
// worked. After completion Current stays on the last step.
type Session struct {
	ID        string    `json:"session_id"`
	Problem   string    `json:"problem"`
	Status    Status    `json:"status"`
	Steps     []Step    `json:"steps"`
	Current   int       `json:"current_step"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// newSession builds a session from a validated study plan. The session
// opens in progress on step 0.
func newSession(id, problem string, plan *tutor.StudyPlan) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        id,
		Problem:   problem,
		Status:    StatusInProgress,
		Current:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, p := range plan.Steps {
		s.Steps = append(s.Steps, Step{
			Index:     i,
			Objective: p.Objective,
			State:     StepPending,
		})
	}
	return s
}

// currentStep returns the step being worked, or nil once completed.
func (s *Session) currentStep() *Step {
	if s.Status == StatusCompleted {
		return nil
	}
	return &s.Steps[s.Current]
}

// clone returns a deep copy safe to hand to callers.
func (s *Session) clone() *Session {
	out := *s
	out.Steps = make([]Step, len(s.Steps))
	copy(out.Steps, s.Steps)
	return &out
}

// touch records interaction time.
func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
