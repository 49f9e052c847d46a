// Package tutor implements the tutoring pipeline: deterministic prompt
// building, repair of raw model text, and strict validation into typed
// records for each operation kind.
package tutor

// OperationKind tags the expected response shape of a model call.
type OperationKind string

const (
	KindSolve  OperationKind = "solve"
	KindQuiz   OperationKind = "quiz"
	KindPlan   OperationKind = "plan"
	KindHint   OperationKind = "hint"
	KindCheck  OperationKind = "check"
	KindReveal OperationKind = "reveal"
)

// Solution is a validated step-by-step solution to a math problem.
type Solution struct {
	ProblemType  string         `json:"problem_type"`
	Concepts     []string       `json:"concepts"`
	Steps        []SolutionStep `json:"steps"`
	FinalAnswer  string         `json:"final_answer"`
	Verification string         `json:"verification"`

	// ExtractedProblem is set when the problem came from an uploaded
	// file, truncated to 500 chars.
	ExtractedProblem string `json:"extracted_problem,omitempty"`
}

// SolutionStep is one numbered step of a solution. Numbers are
// contiguous starting at 1.
type SolutionStep struct {
	Number      int    `json:"step_number"`
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
	Result      string `json:"result"`
}

// Quiz is a validated set of practice questions.
type Quiz struct {
	Topic     string         `json:"quiz_topic"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one practice question with hint and answer key.
type QuizQuestion struct {
	Number        int      `json:"question_number"`
	Question      string   `json:"question"`
	Difficulty    string   `json:"difficulty"`
	Hint          string   `json:"hint"`
	CorrectAnswer string   `json:"correct_answer"`
	SolutionSteps []string `json:"solution_steps"`
}

// Evaluation is the model's judgement of a student answer.
type Evaluation struct {
	Correct     bool   `json:"is_correct"`
	Feedback    string `json:"feedback"`
	Explanation string `json:"explanation,omitempty"`
}

// Hint is a single progressive hint for a study step.
type Hint struct {
	Text string `json:"hint"`
	// Level is how many hints (including this one) the step has issued.
	Level int `json:"level"`
}

// StepSolution is the revealed worked solution for one study step.
type StepSolution struct {
	Solution    string `json:"solution"`
	Explanation string `json:"explanation,omitempty"`
}

// StudyPlan is the model's decomposition of a problem into ordered
// step objectives. Plans carry 3-6 steps.
type StudyPlan struct {
	Steps []PlanStep `json:"steps"`
}

// PlanStep is one objective in a study plan.
type PlanStep struct {
	Number    int    `json:"step_number"`
	Objective string `json:"objective"`
}

// Plan size bounds enforced by validation.
const (
	MinPlanSteps = 3
	MaxPlanSteps = 6
)

// Quiz size bounds. Requested counts clamp into this range.
const (
	MinQuizQuestions     = 1
	MaxQuizQuestions     = 10
	DefaultQuizQuestions = 3
)

// DefaultDifficulty is used when a quiz request does not specify one.
const DefaultDifficulty = "mixed"
