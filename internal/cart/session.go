package cart

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

type Step string

const (
	StepReview    Step = "review"
	StepPayment   Step = "payment"
	StepSubmitted Step = "submitted"
)

var (
	ErrSubmissionInFlight = errors.New("registration is being submitted")
	ErrSubmitted          = errors.New("registration already submitted")
)

// Session is the per-login checkout state: one cart, the current step and the
// uploaded payment proof.
type Session struct {
	ID     string
	UserID string
	Cart   *Cart

	mu           sync.Mutex
	step         Step
	paymentProof string
	submitting   bool
	lastSeen     time.Time
}

func newSession(id, userID string, fee int, now time.Time) *Session {
	return &Session{
		ID:       id,
		UserID:   userID,
		Cart:     New(fee),
		step:     StepReview,
		lastSeen: now,
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) SetStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}

func (s *Session) PaymentProof() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentProof
}

func (s *Session) SetPaymentProof(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentProof = url
}

// BeginSubmit marks a submission as in flight. It returns false when another
// submission for this session has not finished yet.
func (s *Session) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Edit runs fn against the cart unless a submission is in flight or already done.
// fn must not call other Session methods.
func (s *Session) Edit(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.submitting:
		return ErrSubmissionInFlight
	case s.step == StepSubmitted:
		return ErrSubmitted
	}
	fn()
	return nil
}

// Complete empties the cart, forgets the payment proof and moves to the terminal step.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cart.Clear()
	s.paymentProof = ""
	s.step = StepSubmitted
}

// Reset starts a fresh cart on the same session. It is refused while a submission is in flight.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmissionInFlight
	}
	s.Cart.Clear()
	s.paymentProof = ""
	s.step = StepReview
	return nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
