package mailer

import (
	"gopkg.in/gomail.v2"

	"leavedesk/internal/config"
)

// Message is a single outbound email. Text and HTML are both optional but at
// least one should be set.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(msg Message) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTP) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) Send(msg Message) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	if msg.Text != "" {
		mail.SetBody("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		if msg.Text != "" {
			mail.AddAlternative("text/html", msg.HTML)
		} else {
			mail.SetBody("text/html", msg.HTML)
		}
	}
	return m.dialer.DialAndSend(mail)
}
