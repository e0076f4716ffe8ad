// Package notify sends transactional emails over SMTP.
package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/rudenman/Bank-REST/internal/config"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, log *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// TopUpReceipt sends a receipt for a successful card top-up.
func (s *Sender) TopUpReceipt(to, username string, cardID, amount int64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Top-Up Notification"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your card %d has been credited with %d.\n"+
			"Transaction time: %s\n"+
			"\nBest regards,\nBank Cards Service",
		username, cardID, amount, time.Now().Format("2006-01-02 15:04:05"),
	)
	e.Text = []byte(body)

	return s.send(e)
}

// RequestDecided notifies a user that an admin decided their block/close
// request.
func (s *Sender) RequestDecided(to, username string, requestID int64, requestType, status string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Card %s Request %s", requestType, status)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your %s request #%d has been %s.\n"+
			"\nBest regards,\nBank Cards Service",
		username, requestType, requestID, status,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.log.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
