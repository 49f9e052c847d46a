package study

import (
	"context"

	"github.com/google/uuid"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
	"github.com/aturs3001/ai-math-tutor/internal/tutor"
)

// Tutor is the slice of the tutoring service the machine needs.
// *tutor.Service satisfies it.
type Tutor interface {
	PlanSteps(ctx context.Context, problem string) (*tutor.StudyPlan, error)
	StepHint(ctx context.Context, problem, objective string, level int) (*tutor.Hint, error)
	CheckStep(ctx context.Context, problem, objective, studentAnswer string) (*tutor.Evaluation, error)
	RevealStep(ctx context.Context, problem, objective string) (*tutor.StepSolution, error)
}

// Machine drives study sessions through their lifecycle. All session
// mutation happens here, under the session's own mutex; the session is
// only mutated after the model call succeeds, so a failed call leaves
// it exactly as it was.
type Machine struct {
	tutor Tutor
	store *Store
}

// NewMachine creates a session machine on top of a tutoring service.
func NewMachine(t Tutor, store *Store) *Machine {
	return &Machine{tutor: t, store: store}
}

// CheckResult is the outcome of checking a step answer.
type CheckResult struct {
	Evaluation *tutor.Evaluation `json:"evaluation"`
	Session    *Session          `json:"session"`
}

// RevealResult is the outcome of revealing a step.
type RevealResult struct {
	Solution *tutor.StepSolution `json:"solution"`
	Session  *Session            `json:"session"`
}

// HintResult is the outcome of requesting a hint.
type HintResult struct {
	Hint    *tutor.Hint `json:"hint"`
	Session *Session    `json:"session"`
}

// Start decomposes a problem into a plan and opens a new in-progress
// session on step 0. Nothing is stored if planning fails.
func (m *Machine) Start(ctx context.Context, problem string) (*Session, error) {
	plan, err := m.tutor.PlanSteps(ctx, problem)
	if err != nil {
		return nil, err
	}

	s := newSession(uuid.NewString(), problem, plan)
	m.store.put(s)
	return s.clone(), nil
}

// Get returns a snapshot of a session.
func (m *Machine) Get(id string) (*Session, error) {
	e, ok := m.store.get(id)
	if !ok {
		return nil, fault.SessionNotFound(id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone(), nil
}

// End removes a session. Ending an unknown or already-ended session is
// not an error.
func (m *Machine) End(id string) {
	m.store.remove(id)
}

// Hint issues the next progressive hint for the given step. The step
// must be the session's current step and must have hint budget left;
// both guards run before any model call. The hint count only advances
// when the model call succeeds.
func (m *Machine) Hint(ctx context.Context, id string, stepIndex int) (*HintResult, error) {
	e, ok := m.store.get(id)
	if !ok {
		return nil, fault.SessionNotFound(id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	step, err := guardStep(e.session, stepIndex)
	if err != nil {
		return nil, err
	}
	if step.HintsUsed >= MaxHintsPerStep {
		return nil, fault.HintBudgetExceeded(stepIndex, MaxHintsPerStep)
	}

	hint, err := m.tutor.StepHint(ctx, e.session.Problem, step.Objective, step.HintsUsed+1)
	if err != nil {
		return nil, err
	}

	step.HintsUsed++
	e.session.touch()
	return &HintResult{Hint: hint, Session: e.session.clone()}, nil
}

// Check grades the student's answer for the given step. A correct
// answer advances the session; a correct answer on the last step
// completes it. An incorrect answer records the attempt and stays put.
func (m *Machine) Check(ctx context.Context, id string, stepIndex int, studentAnswer string) (*CheckResult, error) {
	e, ok := m.store.get(id)
	if !ok {
		return nil, fault.SessionNotFound(id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	step, err := guardStep(e.session, stepIndex)
	if err != nil {
		return nil, err
	}

	ev, err := m.tutor.CheckStep(ctx, e.session.Problem, step.Objective, studentAnswer)
	if err != nil {
		return nil, err
	}

	step.Attempts++
	if ev.Correct {
		step.State = StepCorrect
		if e.session.Current == len(e.session.Steps)-1 {
			e.session.Status = StatusCompleted
		} else {
			e.session.Current++
		}
	} else {
		step.State = StepIncorrect
	}
	e.session.touch()
	return &CheckResult{Evaluation: ev, Session: e.session.clone()}, nil
}

// Reveal shows the worked solution for the given step. The step is
// marked revealed but the session does not advance; the student still
// has to submit the answer through Check.
func (m *Machine) Reveal(ctx context.Context, id string, stepIndex int) (*RevealResult, error) {
	e, ok := m.store.get(id)
	if !ok {
		return nil, fault.SessionNotFound(id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	step, err := guardStep(e.session, stepIndex)
	if err != nil {
		return nil, err
	}

	sol, err := m.tutor.RevealStep(ctx, e.session.Problem, step.Objective)
	if err != nil {
		return nil, err
	}

	step.State = StepRevealed
	e.session.touch()
	return &RevealResult{Solution: sol, Session: e.session.clone()}, nil
}

// guardStep checks that the session is still live and stepIndex is the
// current step's 0-based index. Completed sessions accept no step
// operations.
func guardStep(s *Session, stepIndex int) (*Step, error) {
	if s.Status == StatusCompleted || stepIndex != s.Current {
		return nil, fault.StepOutOfRange(stepIndex, s.Current)
	}
	return s.currentStep(), nil
}
