package prompt

import (
	"strings"
)

// Answer pairs one submission line with the question at the same position.
type Answer struct {
	Position int
	Question string
	Text     string
}

// Submission is a raw questionnaire submission split into positional
// answers. Missing lines are reported, never filled in.
type Submission struct {
	Answers []Answer
	// Extra holds lines beyond the last question.
	Extra []string
}

// ParseSubmission pairs each line of raw with the glossary question at the
// same position. Line order is preserved and no answer is defaulted.
func ParseSubmission(g Glossary, raw string) Submission {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.TrimRight(raw, "\n")

	var lines []string
	if strings.TrimSpace(raw) != "" {
		lines = strings.Split(raw, "\n")
	}

	var s Submission
	for i, line := range lines {
		if i >= len(g) {
			s.Extra = append(s.Extra, line)
			continue
		}
		s.Answers = append(s.Answers, Answer{
			Position: i + 1,
			Question: g[i],
			Text:     strings.TrimSpace(line),
		})
	}
	return s
}

// Get returns the answer at a zero-based glossary position.
func (s Submission) Get(pos int) (string, bool) {
	if pos < 0 || pos >= len(s.Answers) {
		return "", false
	}
	return s.Answers[pos].Text, true
}

// Missing reports how many questions of g have no line in the submission.
func (s Submission) Missing(g Glossary) int {
	if n := len(g) - len(s.Answers); n > 0 {
		return n
	}
	return 0
}
