package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logger"
)

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

type mailer interface {
	Send(name, email, message string) error
}

type smtpMailer struct {
	cfg config.SMTP
	log *logger.Logger
}

func (m smtpMailer) Send(name, email, message string) error {
	if !m.cfg.Configured() {
		return errSMTPNotConfigured
	}
	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info("contact email sent", "name", name)
	return nil
}

// headerSafe rejects values that could inject extra mail headers.
func headerSafe(v string) bool {
	return !strings.ContainsAny(v, "\r\n")
}

// contact handles the HTMX form post and answers with an HTML fragment.
func (s *server) contact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	_, addrErr := mail.ParseAddress(email)
	if name == "" || message == "" || addrErr != nil || !headerSafe(name) || !headerSafe(email) {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	if err := s.mailer.Send(name, email, message); err != nil {
		s.log.Error("contact email failed", "error", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
