// Package prompt assembles completion requests: the escaped conversation
// chain for the code companion and the fixed context/query template for the
// document analyzer.
package prompt

import (
	"strings"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

// CompanionSystemPrompt is the fixed system instruction for chat mode.
const CompanionSystemPrompt = "You are an AI assistant that provides accurate answers for programming, " +
	"debugging and general queries. When answering technical questions, provide step-by-step explanations " +
	"and practical examples. If a PDF is uploaded, analyze its content before answering related questions. " +
	"If a question lacks clarity, ask for more details. Always provide responses that are clear, logical, " +
	"and useful. Always respond in English."

// analyzerTemplate has two named slots, context and query.
const analyzerTemplate = "Answer based on context:\n\n{context}\n\nQuestion: {query}"

// Escape doubles curly braces so turn content is treated as literal text by
// any downstream templating, never as a directive.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	return strings.ReplaceAll(s, "}", "}}")
}

// Unescape reverses Escape, restoring the literal user text.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, "{{", "{")
	return strings.ReplaceAll(s, "}}", "}")
}

// Chain builds the completion request for chat mode: the system instruction
// first, then every logged turn in original order with escaped content.
// System turns inside the log are preserved as-is.
func Chain(system string, turns []domain.Turn) []domain.Turn {
	out := make([]domain.Turn, 0, len(turns)+1)
	out = append(out, domain.Turn{Role: domain.RoleSystem, Content: system})
	for _, t := range turns {
		out = append(out, domain.Turn{Role: t.Role, Content: Escape(t.Content)})
	}
	return out
}

// Render resolves a built chain for sending: each turn's content is treated
// as a template applied to zero arguments, so escaped braces come back as
// the user's literal text and nothing is ever substituted.
func Render(turns []domain.Turn) []domain.Turn {
	out := make([]domain.Turn, len(turns))
	for i, t := range turns {
		out[i] = domain.Turn{Role: t.Role, Content: Unescape(t.Content)}
	}
	return out
}

// AnalyzerPrompt fills the fixed document-analyzer template. The context and
// query values are inserted literally; only the template's own slots are
// substituted.
func AnalyzerPrompt(context, query string) string {
	// Single pass over the template so slot-like text inside the inserted
	// values is never rescanned.
	r := strings.NewReplacer("{context}", context, "{query}", query)
	return r.Replace(analyzerTemplate)
}
