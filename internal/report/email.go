package report

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"jobsweep/internal/config"
	apperrors "jobsweep/internal/errors"
)

// EmailSender delivers the HTML digest over SMTP with STARTTLS.
type EmailSender struct {
	host       string
	port       int
	sender     string
	password   string
	recipients []string
}

func NewEmailSender(config *config.Config) *EmailSender {
	return &EmailSender{
		host:       config.SMTPHost,
		port:       config.SMTPPort,
		sender:     config.EmailSender,
		password:   config.EmailPassword,
		recipients: config.EmailRecipients,
	}
}

func (s *EmailSender) Configured() bool {
	return s.sender != "" && s.password != "" && len(s.recipients) > 0
}

func (s *EmailSender) Send(subject, htmlBody string) error {
	if !s.Configured() {
		return apperrors.InvalidInput("email sender not configured", nil)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(s.recipients, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.sender, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.sender, s.recipients, []byte(msg.String())); err != nil {
		return apperrors.Unavailable("sending report email", err)
	}
	return nil
}
