// Package mailer sends best-effort transactional email over SMTP.
package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/gomail.v2"
)

// Mailer holds SMTP settings. A zero-config mailer is disabled: every send
// becomes a logged no-op so a missing SMTP setup never breaks a request path.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USER and
// SMTP_PASS environment variables.
func NewFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     fmt.Sprintf("SkillSync Team <%s>", os.Getenv("SMTP_USER")),
	}
}

// Send delivers a single HTML email synchronously.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m == nil || m.host == "" {
		log.Printf("mailer disabled, dropping email to %s (%s)", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}

// SendAsync fires the email on its own goroutine. Failures are logged and
// swallowed; the caller's request never waits on, or fails because of, SMTP.
func (m *Mailer) SendAsync(to, subject, htmlBody string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("mailer panic recovered: %v", r)
			}
		}()
		if err := m.Send(to, subject, htmlBody); err != nil {
			log.Printf("failed to send email to %s: %v", to, err)
		}
	}()
}
