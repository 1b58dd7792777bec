// Package mail delivers booking confirmation messages over SMTP.
package mail

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, message Message, logger *zerolog.Logger) error
}

type Configuration struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func ConfigurationFromEnv() Configuration {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return Configuration{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     from,
	}
}

type smtpSender struct {
	configuration Configuration
}

func NewSmtpSender(configuration Configuration) Sender {
	return &smtpSender{configuration: configuration}
}

func (s *smtpSender) Send(ctx context.Context, message Message, logger *zerolog.Logger) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.configuration.From)
	m.SetHeader("To", message.To)
	m.SetHeader("Subject", message.Subject)
	m.SetBody("text/html", message.HTML)

	dialer := gomail.NewDialer(
		s.configuration.Host,
		s.configuration.Port,
		s.configuration.Username,
		s.configuration.Password,
	)

	if err := dialer.DialAndSend(m); err != nil {
		logger.Err(err).Str("to", message.To).Msg("smtp delivery failed")

		return err
	}

	return nil
}
