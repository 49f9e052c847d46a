package tutor

import (
	"fmt"
	"strings"
)

// Prompt building is pure and deterministic: the same operation and
// payload always produce the same system and user messages. Every
// template instructs the model to emit bare JSON; the repair package
// exists because models break that instruction.

const solveSystemPrompt = `You are an expert math tutor helping students understand mathematical concepts. Solve math problems step-by-step with clear, educational explanations.

When solving:
1. Identify the problem type (algebra, calculus, geometry, trigonometry, etc.)
2. List the mathematical concepts and formulas used
3. Show each step with an explanation of WHY it is taken
4. Mark the final answer clearly
5. Explain how to verify the answer when applicable

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "problem_type": "The category of math problem",
    "concepts": ["List of mathematical concepts used"],
    "steps": [
        {
            "step_number": 1,
            "action": "What is being done in this step",
            "explanation": "Why this step is necessary",
            "result": "The mathematical result of this step"
        }
    ],
    "final_answer": "The final answer to the problem",
    "verification": "How to verify the answer (if applicable)"
}

Be encouraging and educational. The goal is to help students LEARN, not just get answers.`

const quizSystemPrompt = `You are an expert math tutor creating practice problems for students.

When creating quiz questions:
1. Make problems educational and appropriately challenging
2. Mix difficulty levels when multiple questions are requested
3. Ensure every problem is solvable with a clear, unique answer
4. Cover the requested topic thoroughly

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "quiz_topic": "The mathematical topic being tested",
    "questions": [
        {
            "question_number": 1,
            "question": "The math problem to solve",
            "difficulty": "easy/medium/hard",
            "hint": "A helpful hint without giving away the answer",
            "correct_answer": "The correct answer",
            "solution_steps": ["Brief steps to solve"]
        }
    ]
}

Create engaging problems that help students build confidence and understanding.`

const evaluateSystemPrompt = `You are an expert math tutor evaluating a student's answer to a math problem.

Compare the student's answer to the correct answer and provide feedback.

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "is_correct": true or false,
    "feedback": "Encouraging feedback explaining if correct or what went wrong",
    "explanation": "Brief explanation of the correct approach if the answer was wrong"
}

Be encouraging and constructive, even when the answer is incorrect.
Consider equivalent forms of answers (e.g., 0.5 = 1/2 = 50%).`

const planSystemPrompt = `You are an expert math tutor breaking a problem into a guided study session.

Decompose the problem into between 3 and 6 ordered learning steps. Each step is one objective the student must complete on the way to the full solution. Objectives describe what to do, not the answer.

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "steps": [
        {
            "step_number": 1,
            "objective": "What the student should accomplish in this step"
        }
    ]
}`

const hintSystemPrompt = `You are an expert math tutor giving a hint for one step of a guided study session.

Hints are progressive: level 1 is a gentle nudge, level 2 is more specific, level 3 nearly shows the technique. Never state the step's answer outright.

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "hint": "The hint text"
}`

const checkSystemPrompt = `You are an expert math tutor checking a student's answer for one step of a guided study session.

Judge only the current step's objective, not the whole problem. Consider equivalent forms of answers (e.g., 0.5 = 1/2 = 50%).

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "is_correct": true or false,
    "feedback": "Encouraging feedback for the student"
}`

const revealSystemPrompt = `You are an expert math tutor revealing the worked solution for one step of a guided study session.

Show how to complete the step's objective, with the reasoning spelled out.

You MUST respond with ONLY valid JSON (no markdown, no code blocks) in this exact format:
{
    "solution": "The worked result of this step",
    "explanation": "The reasoning behind it"
}`

// SolvePrompt builds the messages for a full step-by-step solution.
func SolvePrompt(problem string) (system, user string) {
	return solveSystemPrompt, fmt.Sprintf("Please solve this math problem step-by-step:\n\n%s", problem)
}

// DocumentSolvePrompt builds the messages for solving whatever problem
// appears in extracted document text.
func DocumentSolvePrompt(text string) (system, user string) {
	return solveSystemPrompt, fmt.Sprintf("Please find and solve any math problem(s) in this document:\n\n%s", text)
}

// QuizPrompt builds the messages for quiz generation.
func QuizPrompt(topic string, count int, difficulty string) (system, user string) {
	return quizSystemPrompt, fmt.Sprintf(
		"Generate %d %s difficulty quiz questions about %s.",
		count, difficulty, topic,
	)
}

// EvaluatePrompt builds the messages for grading a quiz answer.
func EvaluatePrompt(question, correctAnswer, studentAnswer string) (system, user string) {
	var b strings.Builder
	b.WriteString("Evaluate this student's answer:\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\n", question))
	b.WriteString(fmt.Sprintf("Correct Answer: %s\n", correctAnswer))
	b.WriteString(fmt.Sprintf("Student's Answer: %s\n", studentAnswer))
	b.WriteString("\nDetermine if the student's answer is correct (considering equivalent forms) and provide feedback.")
	return evaluateSystemPrompt, b.String()
}

// PlanPrompt builds the messages for decomposing a problem into study steps.
func PlanPrompt(problem string) (system, user string) {
	return planSystemPrompt, fmt.Sprintf("Break this math problem into a guided study session:\n\n%s", problem)
}

// HintPrompt builds the messages for a progressive hint. Level is
// 1-based: hints already issued plus one.
func HintPrompt(problem, objective string, level int) (system, user string) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Problem: %s\n", problem))
	b.WriteString(fmt.Sprintf("Current step objective: %s\n", objective))
	b.WriteString(fmt.Sprintf("Hint level: %d of 3\n", level))
	b.WriteString("\nGive the student a hint at this level for completing the current step.")
	return hintSystemPrompt, b.String()
}

// CheckPrompt builds the messages for checking a student's step answer.
func CheckPrompt(problem, objective, studentAnswer string) (system, user string) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Problem: %s\n", problem))
	b.WriteString(fmt.Sprintf("Current step objective: %s\n", objective))
	b.WriteString(fmt.Sprintf("Student's answer for this step: %s\n", studentAnswer))
	b.WriteString("\nJudge whether the student completed this step correctly.")
	return checkSystemPrompt, b.String()
}

// RevealPrompt builds the messages for revealing a step's solution.
func RevealPrompt(problem, objective string) (system, user string) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Problem: %s\n", problem))
	b.WriteString(fmt.Sprintf("Current step objective: %s\n", objective))
	b.WriteString("\nShow the worked solution for this step.")
	return revealSystemPrompt, b.String()
}
