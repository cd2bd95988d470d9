package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/pkg/errors"
)

type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	addr string
	auth smtp.Auth
	from string
	send SendFunc
}

func NewMailer(addr, host, user, password, from string) *Mailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &Mailer{addr: addr, auth: auth, from: from, send: smtp.SendMail}
}

// Handle emails the registrant about a submitted or reviewed registration.
func (m *Mailer) Handle(_ context.Context, msg *Message) error {
	if msg.UserEmail == "" {
		return nil
	}

	subject, body := compose(msg)
	if subject == "" {
		return nil
	}

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.from, msg.UserEmail, subject, body)

	if err := m.send(m.addr, m.auth, m.from, []string{msg.UserEmail}, []byte(raw)); err != nil {
		return errors.Wrapf(err, "send email to %s", msg.UserEmail)
	}
	return nil
}

func compose(msg *Message) (string, string) {
	name := msg.UserName
	if name == "" {
		name = "there"
	}
	events := strings.Join(msg.Events, ", ")

	switch {
	case msg.Type == MessageRegistrationSubmitted:
		return "TECHXAURA 2K26: registration received",
			fmt.Sprintf("Hi %s,\n\nWe received your registration for %s (amount %d).\n"+
				"Our team will verify your payment and send a confirmation email shortly.\n", name, events, msg.Amount)
	case msg.Type == MessageStatusChanged && msg.Status == model.PaymentStatusVerified:
		return "TECHXAURA 2K26: payment verified",
			fmt.Sprintf("Hi %s,\n\nYour payment has been verified. You are registered for %s.\nSee you at the symposium!\n", name, events)
	case msg.Type == MessageStatusChanged && msg.Status == model.PaymentStatusRejected:
		return "TECHXAURA 2K26: payment rejected",
			fmt.Sprintf("Hi %s,\n\nWe could not verify the payment for your registration (%s).\n"+
				"Please contact the organisers or register again with a valid payment screenshot.\n", name, events)
	default:
		return "", ""
	}
}
