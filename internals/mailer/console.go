package mailer

import (
	"log"
	"sync"
)

// ConsoleMailer logs messages instead of delivering them. Used in dev and in
// tests, which inspect SentMessages.
type ConsoleMailer struct {
	mu            sync.Mutex
	SentMessages  []Message
	DisableOutput bool
	// FailWith, when set, is returned by Send. Lets tests exercise the
	// swallowed-email-error path.
	FailWith error
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) Send(msg Message) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	m.SentMessages = append(m.SentMessages, msg)
	m.mu.Unlock()
	if !m.DisableOutput {
		log.Printf("[MAILER] to=%s subject=%q", msg.To, msg.Subject)
	}
	return nil
}

func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.SentMessages))
	copy(out, m.SentMessages)
	return out
}
