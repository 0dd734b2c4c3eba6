package service

import (
	"context"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
	"github.com/duttanayan/LLM-pdf-summmarizer/internal/prompt"
)

// Companion is the coding-help chat mode. Every response is generated from
// the full transcript chained behind the fixed system instruction.
type Companion struct {
	gate      domain.AuthGate
	completer domain.Completer
	log       domain.MessageLog
	logFailed bool
}

// NewCompanion creates the chat service over the given transcript.
func NewCompanion(gate domain.AuthGate, completer domain.Completer, log domain.MessageLog, logFailedGenerations bool) *Companion {
	return &Companion{gate: gate, completer: completer, log: log, logFailed: logFailedGenerations}
}

// Respond appends the user's query to the transcript, runs the prompt chain
// through the completion service and appends the answer. A generation
// failure is contained as a warning-prefixed answer; the conversation flow
// is never broken by an error.
func (c *Companion) Respond(ctx context.Context, userQuery string) (string, error) {
	if !c.gate.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	c.log.Append(domain.Turn{Role: domain.RoleUser, Content: userQuery})

	chain := prompt.Chain(prompt.CompanionSystemPrompt, c.log.Turns())
	answer, err := c.completer.Complete(ctx, prompt.Render(chain))
	if err != nil {
		answer = WarningPrefix + err.Error()
		if c.logFailed {
			c.log.Append(domain.Turn{Role: domain.RoleAssistant, Content: answer})
		}
		return answer, nil
	}
	c.log.Append(domain.Turn{Role: domain.RoleAssistant, Content: answer})
	return answer, nil
}

// Transcript returns the conversation log in insertion order.
func (c *Companion) Transcript() []domain.Turn {
	return c.log.Turns()
}
