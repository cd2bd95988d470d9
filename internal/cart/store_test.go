package cart

import (
	"testing"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore(100)

	sess := s.Open("s1", "u1")
	require.NotNil(t, sess)
	assert.Equal(t, StepReview, sess.Step())
	assert.Equal(t, 100, sess.Cart.Total())

	sess.Cart.Add(event("quiz", model.TimeSlotMorning))
	again := s.Open("s1", "u1")
	assert.Same(t, sess, again)
	assert.Equal(t, 1, again.Cart.Len())

	other := s.Open("s2", "u1")
	assert.NotSame(t, sess, other)
	assert.Zero(t, other.Cart.Len())

	s.Close("s1")
	_, ok := s.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStore_SessionNotSharedAcrossUsers(t *testing.T) {
	s := NewStore(100)
	sess := s.Open("s1", "u1")
	sess.Cart.Add(event("quiz", model.TimeSlotMorning))

	stolen := s.Open("s1", "u2")
	assert.Equal(t, "u2", stolen.UserID)
	assert.Zero(t, stolen.Cart.Len())
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s := NewStore(100)
	s.now = func() time.Time { return now }

	s.Open("old", "u1")
	now = now.Add(90 * time.Minute)
	s.Open("fresh", "u2")
	now = now.Add(45 * time.Minute)

	removed := s.Sweep(2 * time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := s.Get("old")
	assert.False(t, ok)
	_, ok = s.Get("fresh")
	assert.True(t, ok)
}

func TestSession_Submission(t *testing.T) {
	s := NewStore(100)
	sess := s.Open("s1", "u1")
	sess.Cart.Add(event("quiz", model.TimeSlotMorning))
	sess.SetStep(StepPayment)
	sess.SetPaymentProof("https://storage/proof.png")

	require.True(t, sess.BeginSubmit())
	assert.False(t, sess.BeginSubmit())
	sess.Complete()
	sess.EndSubmit()

	assert.Equal(t, StepSubmitted, sess.Step())
	assert.Zero(t, sess.Cart.Len())
	assert.Empty(t, sess.PaymentProof())
	assert.True(t, sess.BeginSubmit())
	assert.ErrorIs(t, sess.Reset(), ErrSubmissionInFlight)
	assert.Equal(t, StepSubmitted, sess.Step())
	sess.EndSubmit()

	require.NoError(t, sess.Reset())
	assert.Equal(t, StepReview, sess.Step())
}

func TestSession_Edit(t *testing.T) {
	s := NewStore(100)
	sess := s.Open("s1", "u1")
	quiz := event("quiz", model.TimeSlotMorning)

	require.NoError(t, sess.Edit(func() { sess.Cart.Add(quiz) }))
	assert.Equal(t, 1, sess.Cart.Len())

	require.True(t, sess.BeginSubmit())
	assert.True(t, sess.Submitting())
	called := false
	assert.ErrorIs(t, sess.Edit(func() { called = true }), ErrSubmissionInFlight)
	assert.False(t, called)

	sess.Complete()
	sess.EndSubmit()
	assert.False(t, sess.Submitting())
	assert.ErrorIs(t, sess.Edit(func() { called = true }), ErrSubmitted)
	assert.False(t, called)
}
