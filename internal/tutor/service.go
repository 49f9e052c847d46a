package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
	"github.com/aturs3001/ai-math-tutor/internal/llm"
	"github.com/aturs3001/ai-math-tutor/internal/repair"
)

// Config holds generation settings for tutoring operations.
type Config struct {
	// MaxTokens bounds each model response.
	MaxTokens int

	// Temperature for generation. Solving and checking want low
	// temperature; quiz generation tolerates more variety.
	Temperature float64

	// Timeout bounds each model call. Zero means no service-level bound.
	Timeout time.Duration
}

// DefaultConfig returns production generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.3,
		Timeout:     60 * time.Second,
	}
}

// Service runs the tutoring pipeline: prompt → model → repair →
// validate. It is stateless and safe for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutoring service on top of a model provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// extractedLimit caps the echoed document text on file-based solves.
const extractedLimit = 500

// Solve produces a step-by-step solution for a math problem.
func (s *Service) Solve(ctx context.Context, problem string) (*Solution, error) {
	system, user := SolvePrompt(problem)
	text, err := s.generate(ctx, "solve", system, user, SolutionSchema)
	if err != nil {
		return nil, err
	}
	return ValidateSolution(text)
}

// SolveDocument solves whatever problem appears in text extracted from
// an uploaded file, echoing the extracted text back truncated.
func (s *Service) SolveDocument(ctx context.Context, docText string) (*Solution, error) {
	system, user := DocumentSolvePrompt(docText)
	text, err := s.generate(ctx, "solve", system, user, SolutionSchema)
	if err != nil {
		return nil, err
	}
	sol, err := ValidateSolution(text)
	if err != nil {
		return nil, err
	}
	sol.ExtractedProblem = docText
	if len(sol.ExtractedProblem) > extractedLimit {
		sol.ExtractedProblem = sol.ExtractedProblem[:extractedLimit] + "..."
	}
	return sol, nil
}

// GenerateQuiz produces a validated quiz. Count clamps into 1-10 and
// defaults to 3; difficulty defaults to "mixed".
func (s *Service) GenerateQuiz(ctx context.Context, topic string, count int, difficulty string) (*Quiz, error) {
	if count == 0 {
		count = DefaultQuizQuestions
	}
	count = min(max(count, MinQuizQuestions), MaxQuizQuestions)
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	system, user := QuizPrompt(topic, count, difficulty)
	text, err := s.generate(ctx, "quiz", system, user, QuizSchema)
	if err != nil {
		return nil, err
	}
	return ValidateQuiz(text)
}

// EvaluateAnswer grades a student's answer against the answer key.
func (s *Service) EvaluateAnswer(ctx context.Context, question, correctAnswer, studentAnswer string) (*Evaluation, error) {
	system, user := EvaluatePrompt(question, correctAnswer, studentAnswer)
	text, err := s.generate(ctx, "evaluate", system, user, EvaluationSchema)
	if err != nil {
		return nil, err
	}
	return ValidateEvaluation(text)
}

// PlanSteps decomposes a problem into 3-6 ordered study objectives.
func (s *Service) PlanSteps(ctx context.Context, problem string) (*StudyPlan, error) {
	system, user := PlanPrompt(problem)
	text, err := s.generate(ctx, "plan", system, user, PlanSchema)
	if err != nil {
		return nil, err
	}
	return ValidatePlan(text)
}

// StepHint produces a progressive hint for the current study step.
func (s *Service) StepHint(ctx context.Context, problem, objective string, level int) (*Hint, error) {
	system, user := HintPrompt(problem, objective, level)
	text, err := s.generate(ctx, "hint", system, user, HintSchema)
	if err != nil {
		return nil, err
	}
	hint, err := ValidateHint(text)
	if err != nil {
		return nil, err
	}
	hint.Level = level
	return hint, nil
}

// CheckStep grades a student's answer for the current study step.
func (s *Service) CheckStep(ctx context.Context, problem, objective, studentAnswer string) (*Evaluation, error) {
	system, user := CheckPrompt(problem, objective, studentAnswer)
	text, err := s.generate(ctx, "check", system, user, EvaluationSchema)
	if err != nil {
		return nil, err
	}
	return ValidateEvaluation(text)
}

// RevealStep produces the worked solution for the current study step.
func (s *Service) RevealStep(ctx context.Context, problem, objective string) (*StepSolution, error) {
	system, user := RevealPrompt(problem, objective)
	text, err := s.generate(ctx, "reveal", system, user, StepSolutionSchema)
	if err != nil {
		return nil, err
	}
	return ValidateStepSolution(text)
}

// generate runs one model call and repairs the raw response. All
// responses here are object-shaped.
func (s *Service) generate(ctx context.Context, purpose, system, user string, schema *llm.Schema) (string, error) {
	ctx = llm.WithPurpose(ctx, purpose)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", classifyProviderError(err)
	}

	return repair.Repair(string(resp.Content), repair.ShapeObject)
}

// classifyProviderError maps provider errors into the fault taxonomy.
// A schema-invalid response that survived the provider's single retry
// is a schema violation; everything else is upstream.
func classifyProviderError(err error) error {
	var inv *llm.ErrInvalidResponse
	if errors.As(err, &inv) {
		msg := inv.Err.Error()
		if i := strings.IndexByte(msg, '\n'); i > 0 {
			msg = msg[:i]
		}
		return &fault.Fault{
			Kind:    fault.KindSchemaViolation,
			Message: msg,
			Raw:     fault.Truncate(string(inv.Content)),
			Err:     err,
		}
	}
	return fault.Upstream(err)
}
