package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/cart"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/catalog"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/checkout"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/db"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/notify"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/storage"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMaxUploadBytes = 5 << 20

type CheckoutService struct {
	tx db.Transactor

	catalog  *catalog.Catalog
	sessions *cart.Store

	users         repository.UserRepository
	registrations repository.RegistrationRepository
	teamMembers   repository.TeamMemberRepository
	storage       storage.ObjectStorage
	publisher     notify.Publisher

	maxUploadBytes int64
	now            func() time.Time
}

func NewCheckoutService(tx db.Transactor, events *catalog.Catalog, sessions *cart.Store) *CheckoutService {
	return &CheckoutService{
		tx:             tx,
		catalog:        events,
		sessions:       sessions,
		publisher:      notify.NewNopPublisher(),
		maxUploadBytes: defaultMaxUploadBytes,
		now:            time.Now,
	}
}

// Session returns the live checkout session behind a participant token.
func (c *CheckoutService) Session(sessionID, userID string) (*cart.Session, *Error) {
	sess, ok := c.sessions.Get(sessionID)
	if !ok || sess.UserID != userID {
		return nil, NewError(ErrorCodeUnauthorized, "session expired, please sign in again")
	}
	return sess, nil
}

func (c *CheckoutService) Cart(sess *cart.Session) *model.CartView {
	items := sess.Cart.Items()

	entries := make([]model.CartEntry, 0, len(items))
	for _, item := range items {
		conflicts := make([]string, 0)
		for _, e := range sess.Cart.ConflictsFor(item.Event) {
			conflicts = append(conflicts, e.ID)
		}
		entries = append(entries, model.CartEntry{
			Event:       item.Event,
			TeamMembers: item.TeamMembers,
			Conflicts:   conflicts,
		})
	}

	return &model.CartView{
		Step:         string(sess.Step()),
		Items:        entries,
		Total:        sess.Cart.Total(),
		PaymentProof: sess.PaymentProof(),
	}
}

// AddToCart adds the event even when it shares a time slot with another cart event;
// the clash is reported in the returned view.
func (c *CheckoutService) AddToCart(ctx context.Context, sess *cart.Session, eventID string) (*model.CartView, *Error) {
	event, ok := c.catalog.Get(eventID)
	if !ok {
		return nil, NewError(ErrorCodeEventNotFound, "event not found")
	}

	var added bool
	if err := c.edit(sess, func() { added = sess.Cart.Add(event) }); err != nil {
		return nil, err
	}

	if added {
		logger.FromContext(ctx).Info("event added to cart",
			zap.String("session_id", sess.ID),
			zap.String("event_id", eventID),
			zap.Bool("conflict", sess.Cart.HasConflict(event)))
	}

	return c.Cart(sess), nil
}

func (c *CheckoutService) RemoveFromCart(ctx context.Context, sess *cart.Session, eventID string) (*model.CartView, *Error) {
	var removed bool
	if err := c.edit(sess, func() { removed = sess.Cart.Remove(eventID) }); err != nil {
		return nil, err
	}

	if removed {
		logger.FromContext(ctx).Info("event removed from cart",
			zap.String("session_id", sess.ID),
			zap.String("event_id", eventID))
	}

	return c.Cart(sess), nil
}

// SetTeam replaces the roster of a cart event. Member names are trimmed and blank
// names are rejected before the size bounds are checked.
func (c *CheckoutService) SetTeam(ctx context.Context, sess *cart.Session, eventID string, members []model.TeamMember) (*model.CartView, *Error) {
	roster := make([]model.TeamMember, 0, len(members))
	for _, m := range members {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return nil, NewError(ErrorCodeInvalidBody, "team member name must not be blank")
		}
		m.Email = strings.TrimSpace(m.Email)
		m.Phone = strings.TrimSpace(m.Phone)
		roster = append(roster, m)
	}

	var res *Error
	err := c.edit(sess, func() {
		item, ok := sess.Cart.Get(eventID)
		if !ok {
			res = NewError(ErrorCodeEventNotInCart, "event is not in the cart")
			return
		}
		if err := checkout.Roster(item.Event, roster); err != nil {
			res = validationError(ctx, err)
			return
		}
		sess.Cart.SetRoster(eventID, roster)
	})
	if err != nil {
		return nil, err
	}
	if res != nil {
		return nil, res
	}

	return c.Cart(sess), nil
}

// Conflicts lists the cart events sharing a time slot with the given catalog event.
func (c *CheckoutService) Conflicts(sess *cart.Session, eventID string) ([]*model.Event, *Error) {
	event, ok := c.catalog.Get(eventID)
	if !ok {
		return nil, NewError(ErrorCodeEventNotFound, "event not found")
	}
	return sess.Cart.ConflictsFor(event), nil
}

// ResetCart starts a new, empty cart in the review step.
func (c *CheckoutService) ResetCart(ctx context.Context, sess *cart.Session) (*model.CartView, *Error) {
	if err := sess.Reset(); err != nil {
		return nil, NewError(ErrorCodeSubmissionInFlight, "registration is being submitted")
	}
	logger.FromContext(ctx).Info("cart reset", zap.String("session_id", sess.ID))
	return c.Cart(sess), nil
}

func (c *CheckoutService) ProceedToPayment(ctx context.Context, sess *cart.Session) (*model.CartView, *Error) {
	if sess.Submitting() {
		return nil, NewError(ErrorCodeSubmissionInFlight, "registration is being submitted")
	}

	switch sess.Step() {
	case cart.StepPayment:
		return c.Cart(sess), nil
	case cart.StepSubmitted:
		return nil, NewError(ErrorCodeInvalidStep, "registration already submitted")
	}

	items := sess.Cart.Items()
	if len(items) == 0 {
		return nil, NewError(ErrorCodeCartEmpty, "cart is empty")
	}

	for _, item := range items {
		if err := checkout.MinTeamSize(item); err != nil {
			return nil, validationError(ctx, err)
		}
	}

	sess.SetStep(cart.StepPayment)
	return c.Cart(sess), nil
}

func (c *CheckoutService) BackToReview(sess *cart.Session) (*model.CartView, *Error) {
	if sess.Submitting() {
		return nil, NewError(ErrorCodeSubmissionInFlight, "registration is being submitted")
	}
	if sess.Step() == cart.StepSubmitted {
		return nil, NewError(ErrorCodeInvalidStep, "registration already submitted")
	}
	sess.SetStep(cart.StepReview)
	return c.Cart(sess), nil
}

// UploadPaymentProof stores the payment screenshot and remembers its URL on the session.
// A later upload replaces the earlier proof.
func (c *CheckoutService) UploadPaymentProof(ctx context.Context, sess *cart.Session, filename string, r io.Reader) (string, *Error) {
	l := logger.FromContext(ctx)

	if sess.Step() != cart.StepPayment {
		return "", NewError(ErrorCodeInvalidStep, "payment screenshot can only be uploaded on the payment step")
	}
	if sess.Submitting() {
		return "", NewError(ErrorCodeSubmissionInFlight, "registration is being submitted")
	}

	data, err := io.ReadAll(io.LimitReader(r, c.maxUploadBytes+1))
	if err != nil {
		l.Error("failed to read upload", zap.Error(err))
		return "", NewError(ErrorCodeInvalidFile, "failed to read file")
	}
	if len(data) == 0 {
		return "", NewError(ErrorCodeInvalidFile, "file is empty")
	}
	if int64(len(data)) > c.maxUploadBytes {
		return "", NewError(ErrorCodeInvalidFile, fmt.Sprintf("file is larger than %d bytes", c.maxUploadBytes))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", NewError(ErrorCodeInvalidFile, "payment screenshot must be an image")
	}

	objectPath := fmt.Sprintf("%s/%d_%s", sess.UserID, c.now().UnixMilli(), sanitizeFilename(filename, mtype.Extension()))

	url, err := c.storage.Upload(ctx, objectPath, mtype.String(), bytes.NewReader(data))
	if err != nil {
		l.Error("failed to upload payment screenshot", zap.String("path", objectPath), zap.Error(err))
		return "", NewError(ErrorCodeUnspecified, "failed to upload payment screenshot")
	}

	sess.SetPaymentProof(url)

	l.Info("payment screenshot uploaded", zap.String("session_id", sess.ID), zap.String("url", url))
	return url, nil
}

// Submit validates the cart and stores one registration with its team member rows.
// Any failure leaves the cart and the payment step as they were.
func (c *CheckoutService) Submit(ctx context.Context, sess *cart.Session) (*model.Registration, *Error) {
	l := logger.FromContext(ctx)

	if sess.Step() != cart.StepPayment {
		return nil, NewError(ErrorCodeInvalidStep, "registration can only be submitted from the payment step")
	}

	if !sess.BeginSubmit() {
		return nil, NewError(ErrorCodeSubmissionInFlight, "registration is already being submitted")
	}
	defer sess.EndSubmit()

	items := sess.Cart.Items()
	if len(items) == 0 {
		return nil, NewError(ErrorCodeCartEmpty, "cart is empty")
	}

	proof := sess.PaymentProof()
	if err := checkout.Validate(items, proof); err != nil {
		return nil, validationError(ctx, err)
	}

	user, err := c.users.Get(ctx, sess.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, NewError(ErrorCodeNotFound, "user not found")
	case err != nil:
		l.Error("failed to get user", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to submit registration")
	}

	reg := &repository.Registration{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		UserEmail:         user.Email,
		UserName:          user.Name,
		UserPhone:         user.Phone,
		UserCollege:       user.College,
		Events:            make([]model.RegisteredEvent, 0, len(items)),
		Amount:            sess.Cart.Total(),
		PaymentScreenshot: proof,
		PaymentStatus:     model.PaymentStatusPending,
		CreatedAt:         c.now(),
	}

	members := make([]*repository.TeamMember, 0)
	for _, item := range items {
		reg.Events = append(reg.Events, model.RegisteredEvent{
			EventID:     item.Event.ID,
			EventName:   item.Event.Name,
			TeamMembers: item.TeamMembers,
		})
		for _, m := range item.TeamMembers {
			members = append(members, &repository.TeamMember{
				RegistrationID: reg.ID,
				EventID:        item.Event.ID,
				Name:           m.Name,
				Email:          m.Email,
				PhoneNumber:    m.Phone,
				ScreenshotURL:  proof,
			})
		}
	}

	err = c.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := c.registrations.Create(txCtx, reg); err != nil {
			l.Error("failed to create registration", zap.String("registration_id", reg.ID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to submit registration")
		}

		if err := c.teamMembers.CreateBatch(txCtx, members); err != nil {
			l.Error("failed to create team members", zap.String("registration_id", reg.ID), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to submit registration")
		}

		return nil
	})
	if err != nil {
		var res *Error
		if !errors.As(err, &res) {
			l.Error("registration transaction failed", zap.String("registration_id", reg.ID), zap.Error(err))
			res = NewError(ErrorCodeUnspecified, "failed to submit registration")
		}
		return nil, res
	}

	sess.Complete()

	out := toModelRegistration(reg)

	l.Info("registration submitted",
		zap.String("registration_id", out.ID),
		zap.String("user_id", out.UserID),
		zap.Int("events", len(out.Events)))

	if err = c.publisher.Publish(ctx, notify.NewMessage(notify.MessageRegistrationSubmitted, out, c.now())); err != nil {
		l.Warn("failed to publish registration", zap.String("registration_id", out.ID), zap.Error(err))
	}

	return out, nil
}

// edit applies a cart change unless the registration is being or has been submitted.
func (c *CheckoutService) edit(sess *cart.Session, fn func()) *Error {
	err := sess.Edit(fn)
	switch {
	case errors.Is(err, cart.ErrSubmissionInFlight):
		return NewError(ErrorCodeSubmissionInFlight, "registration is being submitted, try again")
	case errors.Is(err, cart.ErrSubmitted):
		return NewError(ErrorCodeInvalidStep, "registration already submitted, start a new cart")
	}
	return nil
}

func (c *CheckoutService) WithUserRepo(r repository.UserRepository) *CheckoutService {
	c.users = r
	return c
}

func (c *CheckoutService) WithRegistrationRepo(r repository.RegistrationRepository) *CheckoutService {
	c.registrations = r
	return c
}

func (c *CheckoutService) WithTeamMemberRepo(r repository.TeamMemberRepository) *CheckoutService {
	c.teamMembers = r
	return c
}

func (c *CheckoutService) WithStorage(s storage.ObjectStorage) *CheckoutService {
	c.storage = s
	return c
}

func (c *CheckoutService) WithPublisher(p notify.Publisher) *CheckoutService {
	c.publisher = p
	return c
}

func (c *CheckoutService) WithMaxUploadBytes(n int64) *CheckoutService {
	if n > 0 {
		c.maxUploadBytes = n
	}
	return c
}

func validationError(ctx context.Context, err error) *Error {
	var teamSize *checkout.TeamSizeError
	var conflict *checkout.ParticipantConflictError

	switch {
	case errors.As(err, &teamSize):
		return NewError(ErrorCodeTeamSize, teamSize.Error())
	case errors.As(err, &conflict):
		return NewError(ErrorCodeParticipantClash, conflict.Error())
	case errors.Is(err, checkout.ErrMissingPaymentProof):
		return NewError(ErrorCodePaymentProof, err.Error())
	default:
		logger.FromContext(ctx).Error("unexpected validation error", zap.Error(err))
		return NewError(ErrorCodeUnspecified, "validation failed")
	}
}

func sanitizeFilename(name, ext string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == "/" {
		return "screenshot" + ext
	}
	return name
}
