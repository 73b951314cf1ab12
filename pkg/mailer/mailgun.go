package mailer

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// Sender delivers rendered emails through Mailgun.
type Sender struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewSender(domain, apiKey, from string) *Sender {
	return &Sender{mg: mailgun.NewMailgun(domain, apiKey), from: from}
}

// Send renders the job's template and submits it to Mailgun.
func (s *Sender) Send(ctx context.Context, job EmailJob) error {
	subject, html, err := Render(job.Template, job.Data)
	if err != nil {
		return err
	}
	msg := s.mg.NewMessage(s.from, subject, "", job.To)
	msg.SetHtml(html)

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err = s.mg.Send(c, msg)
	return err
}
