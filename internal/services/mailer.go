package services

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

const (
	PurposeRegister      = "register"
	PurposeResetPassword = "reset-password"
)

// Mailer is the outbound email collaborator. The service only ever sends
// verification codes, so the interface stays that narrow.
type Mailer interface {
	SendVerificationCode(email string, username string, code string, purpose string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from}
}

func (mailer *SMTPMailer) SendVerificationCode(email string, username string, code string, purpose string) error {
	subject := "Your VitalCheck verification code"
	if purpose == PurposeResetPassword {
		subject = "Your VitalCheck password reset code"
	}

	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour verification code is: %s\r\n\r\nIt expires in 10 minutes. If you did not request this, ignore this email.\r\n",
		username, code,
	)
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		mailer.from, email, subject, body,
	)

	auth := smtp.PlainAuth("", mailer.username, mailer.password, mailer.host)
	address := fmt.Sprintf("%s:%d", mailer.host, mailer.port)
	if err := smtp.SendMail(address, auth, mailer.from, []string{email}, []byte(message)); err != nil {
		return fmt.Errorf("send %s code to %s: %w", purpose, email, err)
	}
	return nil
}

// LogMailer writes codes to the log instead of sending mail. Used in
// development and tests when no SMTP host is configured.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) SendVerificationCode(email string, username string, code string, purpose string) error {
	mailer.logger.Info().
		Str("email", email).
		Str("purpose", purpose).
		Str("code", code).
		Msg("verification code issued (log mailer)")
	return nil
}
