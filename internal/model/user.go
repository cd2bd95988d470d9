package model

import "time"

type UserProfile struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	College       string    `json:"college"`
	Department    string    `json:"department"`
	RulesAccepted bool      `json:"rules_accepted"`
	CreatedAt     time.Time `json:"created_at"`
}

type SignUp struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	College    string `json:"college" validate:"required"`
	Department string `json:"department"`
}

// Session is returned to a client after a successful sign in.
type Session struct {
	Token   string       `json:"token"`
	Profile *UserProfile `json:"profile,omitempty"`
}
