package service

import (
	"context"
	"errors"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/db"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/export"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/notify"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/Gaut2812/TECHXAURA-2K26-main/pkg/logger"
	"go.uber.org/zap"
)

// ExportFile is a generated spreadsheet ready for download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type AdminService struct {
	tx db.Transactor

	registrations repository.RegistrationRepository
	teamMembers   repository.TeamMemberRepository
	sheets        export.Publisher
	publisher     notify.Publisher

	fee       int
	sheetsTab string
	now       func() time.Time
}

func NewAdminService(tx db.Transactor, fee int) *AdminService {
	return &AdminService{
		tx:        tx,
		fee:       fee,
		publisher: notify.NewNopPublisher(),
		now:       time.Now,
	}
}

// ListRegistrations returns every registration, newest first.
func (a *AdminService) ListRegistrations(ctx context.Context) ([]*model.Registration, *Error) {
	regs, err := a.registrations.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list registrations", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list registrations")
	}

	out := make([]*model.Registration, 0, len(regs))
	for _, r := range regs {
		out = append(out, toModelRegistration(r))
	}
	return out, nil
}

// SetPaymentStatus moves a pending registration to verified or rejected.
func (a *AdminService) SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus) (*model.Registration, *Error) {
	l := logger.FromContext(ctx)

	var updated *repository.Registration

	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := a.registrations.Get(txCtx, id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return NewError(ErrorCodeNotFound, "registration not found")
		case err != nil:
			l.Error("failed to get registration", zap.String("registration_id", id), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to get registration")
		}

		if !current.PaymentStatus.CanTransitionTo(status) {
			return NewError(ErrorCodeInvalidTransition,
				"cannot change payment status from "+string(current.PaymentStatus)+" to "+string(status))
		}

		updated, err = a.registrations.UpdateStatus(txCtx, id, status)
		if err != nil { // the row is locked, ErrNotFound cannot happen here
			l.Error("failed to update payment status", zap.String("registration_id", id), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to update payment status")
		}

		return nil
	})
	if err != nil {
		var res *Error
		if !errors.As(err, &res) {
			l.Error("payment status transaction failed", zap.String("registration_id", id), zap.Error(err))
			res = NewError(ErrorCodeUnspecified, "failed to update payment status")
		}
		return nil, res
	}

	out := toModelRegistration(updated)

	l.Info("payment status updated",
		zap.String("registration_id", id),
		zap.String("status", string(status)))

	if err = a.publisher.Publish(ctx, notify.NewMessage(notify.MessageStatusChanged, out, a.now())); err != nil {
		l.Warn("failed to publish status change", zap.String("registration_id", id), zap.Error(err))
	}

	return out, nil
}

// Stats counts registrations per payment status. Revenue is verified registrations times the fee.
func (a *AdminService) Stats(ctx context.Context) (*model.Stats, *Error) {
	regs, err := a.registrations.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list registrations", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to compute stats")
	}

	stats := &model.Stats{Total: len(regs)}
	for _, r := range regs {
		switch r.PaymentStatus {
		case model.PaymentStatusVerified:
			stats.Verified++
		case model.PaymentStatusPending:
			stats.Pending++
		case model.PaymentStatusRejected:
			stats.Rejected++
		}
	}
	stats.Revenue = stats.Verified * a.fee

	return stats, nil
}

func (a *AdminService) ExportRegistrations(ctx context.Context) (*ExportFile, *Error) {
	table, err := a.registrationsTable(ctx)
	if err != nil {
		return nil, err
	}
	return a.xlsx(ctx, table)
}

func (a *AdminService) ExportTeamMembers(ctx context.Context) (*ExportFile, *Error) {
	table, err := a.teamMembersTable(ctx)
	if err != nil {
		return nil, err
	}
	return a.xlsx(ctx, table)
}

// PublishSheets writes both export tables to the configured spreadsheet.
func (a *AdminService) PublishSheets(ctx context.Context) *Error {
	l := logger.FromContext(ctx)

	if a.sheets == nil {
		return NewError(ErrorCodeNotFound, "spreadsheet export is not configured")
	}

	regs, serr := a.registrationsTable(ctx)
	if serr != nil {
		return serr
	}
	if a.sheetsTab != "" {
		regs.Name = a.sheetsTab
	}

	members, serr := a.teamMembersTable(ctx)
	if serr != nil {
		return serr
	}

	for _, t := range []*export.Table{regs, members} {
		if err := a.sheets.Publish(ctx, t); err != nil {
			l.Error("failed to publish sheet", zap.String("tab", t.Name), zap.Error(err))
			return NewError(ErrorCodeUnspecified, "failed to publish spreadsheet")
		}
		l.Info("sheet published", zap.String("tab", t.Name), zap.Int("rows", len(t.Rows)))
	}

	return nil
}

func (a *AdminService) registrationsTable(ctx context.Context) (*export.Table, *Error) {
	regs, err := a.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	return export.Registrations(regs), nil
}

func (a *AdminService) teamMembersTable(ctx context.Context) (*export.Table, *Error) {
	rows, err := a.teamMembers.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list team members", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to list team members")
	}

	records := make([]*model.TeamMemberRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, &model.TeamMemberRecord{
			Name:          r.Name,
			Email:         r.Email,
			PhoneNumber:   r.PhoneNumber,
			ScreenshotURL: r.ScreenshotURL,
		})
	}
	return export.TeamMembers(records), nil
}

func (a *AdminService) xlsx(ctx context.Context, t *export.Table) (*ExportFile, *Error) {
	data, err := export.XLSX(t)
	if err != nil {
		logger.FromContext(ctx).Error("failed to build xlsx", zap.String("table", t.Name), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to build spreadsheet")
	}
	return &ExportFile{
		Name:        export.FileName(t, a.now()),
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (a *AdminService) WithRegistrationRepo(r repository.RegistrationRepository) *AdminService {
	a.registrations = r
	return a
}

func (a *AdminService) WithTeamMemberRepo(r repository.TeamMemberRepository) *AdminService {
	a.teamMembers = r
	return a
}

func (a *AdminService) WithSheetsPublisher(p export.Publisher, tab string) *AdminService {
	a.sheets = p
	a.sheetsTab = tab
	return a
}

func (a *AdminService) WithPublisher(p notify.Publisher) *AdminService {
	a.publisher = p
	return a
}

func toModelRegistration(r *repository.Registration) *model.Registration {
	return &model.Registration{
		ID:                r.ID,
		UserID:            r.UserID,
		UserEmail:         r.UserEmail,
		UserName:          r.UserName,
		UserPhone:         r.UserPhone,
		UserCollege:       r.UserCollege,
		Events:            r.Events,
		Amount:            r.Amount,
		PaymentScreenshot: r.PaymentScreenshot,
		PaymentStatus:     r.PaymentStatus,
		CreatedAt:         r.CreatedAt,
	}
}
