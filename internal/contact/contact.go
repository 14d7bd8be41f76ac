// Package contact validates contact form submissions and delivers them.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message is a contact form submission. Form field names match the page markup.
type Message struct {
	Name  string `form:"fullName" validate:"required,max=120"`
	Email string `form:"email" validate:"required,email"`
	Body  string `form:"message" validate:"required,max=5000"`
}

// ErrNotConfigured is returned by a Mailer that has no credentials.
var ErrNotConfigured = errors.New("mailer not configured")

// Mailer delivers a message to the site owner.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var validate = validator.New()

func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)
}

// Validate returns a visitor-facing description of the first problem found.
func (m Message) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return errors.New("name is too long")
		}
		return errors.New("please tell me your name")
	case "Email":
		return errors.New("please enter a valid email address")
	default:
		if fe.Tag() == "max" {
			return errors.New("message is too long")
		}
		return errors.New("please write a message")
	}
}

// Subject is the mail subject line for a submission.
func (m Message) Subject() string {
	return fmt.Sprintf("Portfolio Contact: %s", m.Name)
}

// Text is the plain-text mail body.
func (m Message) Text() string {
	return fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Body)
}

// MailtoURL builds a mailto link that opens the visitor's own mail client with
// the submission prefilled. Used when no SMTP relay is configured.
func MailtoURL(to string, m Message) string {
	q := url.Values{}
	q.Set("subject", m.Subject())
	q.Set("body", fmt.Sprintf("%s\n\n%s <%s>", m.Body, m.Name, m.Email))
	// mail clients expect %20, not '+'
	return "mailto:" + to + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
