package mailer

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"

	"gradhub_backend/internals/configs"
)

// Message is one outbound email. Body is HTML.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer is any service that can send emails. Implementations are
// fire-and-forget: delivery failures are logged by the caller and never
// propagated, the notification record is the authoritative side effect.
type Mailer interface {
	Send(msg Message) error
}

var bodyTmpl = htmltmpl.Must(htmltmpl.New("body").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.Title}}</h2>
  <p>{{.Text}}</p>
  {{if .Link}}<p><a href="{{.Link}}">Open GradHub</a></p>{{end}}
  <hr>
  <p style="font-size: 12px; color: #888;">This is an automated message from GradHub. Please do not reply.</p>
</body>
</html>`))

// RenderBody wraps a notification title/message in the shared HTML shell.
func RenderBody(title, text, link string) string {
	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, struct {
		Title, Text, Link string
	}{title, text, link})
	if err != nil {
		// fall back to a plain body rather than dropping the mail
		return fmt.Sprintf("<p>%s</p><p>%s</p>", title, text)
	}
	return buf.String()
}

// ProjectLink builds the frontend URL for a project detail page.
func ProjectLink(projectID string) string {
	return configs.FrontendBaseURL + "/projects/" + projectID
}
