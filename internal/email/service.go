package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Service sends patient-facing notifications. Callers treat failures as
// non-fatal; booking never blocks on SMTP.
type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to, patientName, doctorName string, dateTime time.Time) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Enabled  bool
}

type smtpService struct {
	cfg Config
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{cfg: cfg}
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to, patientName, doctorName string, dateTime time.Time) error {
	if !s.cfg.Enabled {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Appointment Confirmation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour appointment with %s is confirmed for %s.\n\nPlease arrive 10 minutes early for check-in.\n",
		patientName, doctorName, dateTime.Format("Monday, 02 Jan 2006 at 15:04")))

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send confirmation email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
