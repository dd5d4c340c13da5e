package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleMailerRecordsMessages(t *testing.T) {
	m := NewConsoleMailer()
	m.DisableOutput = true

	require.NoError(t, m.Send(Message{To: "a@example.edu", Subject: "s", Body: "b"}))
	require.NoError(t, m.Send(Message{To: "b@example.edu", Subject: "s2", Body: "b2"}))

	sent := m.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.edu", sent[0].To)
	assert.Equal(t, "s2", sent[1].Subject)
}

func TestConsoleMailerFailure(t *testing.T) {
	m := NewConsoleMailer()
	m.DisableOutput = true
	m.FailWith = errors.New("smtp down")

	err := m.Send(Message{To: "a@example.edu"})
	assert.Error(t, err)
	assert.Empty(t, m.Sent())
}

func TestRenderBodyIncludesLink(t *testing.T) {
	body := RenderBody("Slot opened", "A slot is free.", "https://gradhub.example/projects/123")
	assert.Contains(t, body, "Slot opened")
	assert.Contains(t, body, "A slot is free.")
	assert.Contains(t, body, "https://gradhub.example/projects/123")

	withoutLink := RenderBody("Plain", "No link here.", "")
	assert.NotContains(t, withoutLink, "href")
}
