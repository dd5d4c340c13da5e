package mailer

import (
	"gopkg.in/gomail.v2"

	"gradhub_backend/internals/configs"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ Mailer = (*smtpMailer)(nil)

// NewSMTPMailer builds a Mailer over the SMTP settings loaded by configs.
func NewSMTPMailer() Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(
			configs.SMTPHost,
			configs.SMTPPort,
			configs.SMTPUser,
			configs.SMTPPassword,
		),
		from: configs.SMTPFrom,
	}
}

func (m *smtpMailer) Send(msg Message) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.Body)
	return m.dialer.DialAndSend(mail)
}
