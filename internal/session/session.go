// Package session owns per-process conversation state: who is logged in and
// the ordered transcript each mode reads and appends to.
package session

import (
	"github.com/google/uuid"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

// CompanionGreeting opens every chat-mode transcript.
const CompanionGreeting = "Hi! I'm DeepSeek. How can I help you code today? 💻"

// TurnLog is an append-only, insertion-ordered conversation transcript.
type TurnLog struct {
	turns []domain.Turn
}

// NewTurnLog creates an empty transcript.
func NewTurnLog() *TurnLog { return &TurnLog{} }

// NewCompanionLog creates a transcript pre-seeded with the chat greeting.
func NewCompanionLog() *TurnLog {
	return &TurnLog{turns: []domain.Turn{
		{Role: domain.RoleAssistant, Content: CompanionGreeting},
	}}
}

// Append adds a turn at the end of the transcript.
func (l *TurnLog) Append(t domain.Turn) { l.turns = append(l.turns, t) }

// Turns returns a copy of the transcript in insertion order.
func (l *TurnLog) Turns() []domain.Turn {
	out := make([]domain.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Session is the per-user state created at login and dropped at logout.
// It exclusively owns its transcripts; nothing is persisted across sessions.
type Session struct {
	ID           string
	User         string
	CompanionLog *TurnLog
	AnalyzerLog  *TurnLog
}

// New creates a session for an authenticated user.
func New(user string) *Session {
	return &Session{
		ID:           uuid.NewString(),
		User:         user,
		CompanionLog: NewCompanionLog(),
		AnalyzerLog:  NewTurnLog(),
	}
}

// LoggedIn reports whether the session carries an authenticated user.
func (s *Session) LoggedIn() bool { return s != nil && s.User != "" }

// CurrentUser returns the authenticated username, or "" when logged out.
func (s *Session) CurrentUser() string {
	if s == nil {
		return ""
	}
	return s.User
}
