package chatbot

import "strings"

// topicSuggestions maps a keyword to follow-up suggestions. The user message
// and the model reply are both matched; first hits win, capped at four.
var topicSuggestions = []struct {
	keyword     string
	suggestions []string
}{
	{"kubernetes", []string{"How do you run Kubernetes in production?", "Tell me about your homelab cluster"}},
	{"ci/cd", []string{"What does your deployment pipeline look like?", "Which CI tools do you prefer?"}},
	{"cloud", []string{"Which cloud providers have you worked with?", "How do you manage cloud costs?"}},
	{"terraform", []string{"How do you structure Terraform modules?", "Tell me about your IaC workflow"}},
	{"monitoring", []string{"What is your observability stack?", "How do you handle alerting?"}},
	{"contact", []string{"How can I reach you?", "Are you open to freelance work?"}},
	{"project", []string{"What is your favourite project?", "Show me something you built recently"}},
	{"experience", []string{"What was your last role?", "How many years of experience do you have?"}},
}

var defaultSuggestions = []string{
	"Tell me about your projects",
	"What technologies do you work with?",
	"How can I contact you?",
}

// suggestReplies picks 2-4 quick replies by keyword-matching the user message
// and the model reply against the topic table.
func suggestReplies(userMessage, reply string) []string {
	haystack := strings.ToLower(userMessage + " " + reply)
	var out []string
	for _, t := range topicSuggestions {
		if strings.Contains(haystack, t.keyword) {
			out = append(out, t.suggestions...)
		}
		if len(out) >= 4 {
			return out[:4]
		}
	}
	if len(out) >= 2 {
		return out
	}
	// pad from the defaults so there are always at least two
	for _, s := range defaultSuggestions {
		if len(out) >= 3 {
			break
		}
		out = append(out, s)
	}
	return out
}
