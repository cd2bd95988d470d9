package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// CanTransitionTo reports whether an admin may move a registration from s to next.
// Only pending registrations can be reviewed; verified and rejected are final.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	return next == PaymentStatusVerified || next == PaymentStatusRejected
}

type RegisteredEvent struct {
	EventID     string       `json:"event_id"`
	EventName   string       `json:"event_name"`
	TeamMembers []TeamMember `json:"team_members"`
}

type Registration struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	UserEmail         string            `json:"user_email"`
	UserName          string            `json:"user_name"`
	UserPhone         string            `json:"user_phone"`
	UserCollege       string            `json:"user_college"`
	Events            []RegisteredEvent `json:"events"`
	Amount            int               `json:"amount"`
	PaymentScreenshot string            `json:"payment_screenshot"`
	PaymentStatus     PaymentStatus     `json:"payment_status"`
	CreatedAt         time.Time         `json:"created_at"`
}

type Stats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
	Revenue  int `json:"revenue"`
}
