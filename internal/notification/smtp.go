package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SMTP経由でHTMLメールを送る
type SMTPNotifier struct {
	host string
	port int
	from string
	auth smtp.Auth
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPNotifier{
		host: host,
		port: port,
		from: from,
		auth: auth,
	}
}

func (n *SMTPNotifier) Notify(ctx context.Context, to string, subject string, htmlBody string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	e := email.NewEmail()
	e.From = n.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := e.Send(addr, n.auth); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
