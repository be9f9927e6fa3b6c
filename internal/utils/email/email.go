package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/finance-insights/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending operator alerts via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.sendSMTP
	return s
}

// NotifyReloadFailure mails the operator that a dataset reload failed
func (s *Sender) NotifyReloadFailure(source string, at time.Time, cause error) error {
	e := composeReloadFailure(s.cfg.SenderEmail, s.cfg.AlertEmail, source, at, cause)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send reload alert to %s: %v", s.cfg.AlertEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.AlertEmail, e.Subject)
	return nil
}

func composeReloadFailure(from, to, source string, at time.Time, cause error) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = "Finance data reload failed"

	body := fmt.Sprintf(
		"The financial dataset could not be reloaded from %s at %s.\n\n"+
			"Error: %v\n\n"+
			"Queries are being answered from the previously loaded data, "+
			"or with a data unavailable message if none was ever loaded.\n",
		source, at.UTC().Format(time.RFC3339), cause,
	)
	body += "\nFinance Insights"
	e.Text = []byte(body)
	return e
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	return e.Send(addr, auth)
}
