package llm

import "fmt"

// OptimizeSystemPrompt instructs the model to score and rewrite a resume.
const OptimizeSystemPrompt = `You are an expert ATS resume assistant. Given a user's resume and a job description prompt, you will:
1. Analyze the resume for ATS-friendliness and job match.
2. Provide a match score (0-100) and feedback for improvement.
3. Output an optimized, ATS-friendly resume in clear, professional English, in Markdown format.
4. Do not use any placeholders like [Your Degree Name], [mention specific project], or [add more here]. If information is missing, fill in with realistic, professional details based on the context.
Respond in JSON with keys: match_score (number), feedback (string), optimized_resume (string, Markdown).`

// CreateSystemPrompt instructs the model to author a new resume.
const CreateSystemPrompt = `You are an expert resume writer. Given a prompt (and optionally an existing resume), generate a new, ATS-friendly resume in Markdown format. Do not use any placeholders like [Your Degree Name], [mention specific project], or [add more here]. If information is missing, fill in with realistic, professional details based on the context. Respond in JSON with key: created_resume (string, Markdown).`

// OptimizeUserContent assembles the user block for an optimize invocation.
func OptimizeUserContent(resumeText, prompt string) string {
	return fmt.Sprintf("RESUME:\n%s\n\nPROMPT:\n%s", resumeText, prompt)
}

// CreateUserContent assembles the user block for a create invocation. An empty
// resumeText means the prompt is the only context.
func CreateUserContent(resumeText, prompt string) string {
	if resumeText == "" {
		return fmt.Sprintf("PROMPT:\n%s", prompt)
	}
	return fmt.Sprintf("EXISTING RESUME:\n%s\n\nPROMPT:\n%s", resumeText, prompt)
}
