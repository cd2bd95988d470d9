package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/db"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Registration struct {
	ID                string                  `db:"id"`
	UserID            string                  `db:"user_id"`
	UserEmail         string                  `db:"user_email"`
	UserName          string                  `db:"user_name"`
	UserPhone         string                  `db:"user_phone"`
	UserCollege       string                  `db:"user_college"`
	Events            []model.RegisteredEvent `db:"events"`
	Amount            int                     `db:"amount"`
	PaymentScreenshot string                  `db:"payment_screenshot"`
	PaymentStatus     model.PaymentStatus     `db:"payment_status"`
	CreatedAt         time.Time               `db:"created_at"`
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	// Get locks the row for update when called inside a transaction.
	Get(ctx context.Context, id string) (*Registration, error)
	UpdateStatus(ctx context.Context, id string, status model.PaymentStatus) (*Registration, error)
	List(ctx context.Context) ([]*Registration, error)
}

var registrationColumns = []any{
	"id", "user_id", "user_email", "user_name", "user_phone", "user_college",
	"events", "amount", "payment_screenshot", "payment_status", "created_at",
}

type pgxRegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &pgxRegistrationRepository{pool: pool}
}

func (p *pgxRegistrationRepository) Create(ctx context.Context, reg *Registration) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	events, err := json.Marshal(reg.Events)
	if err != nil {
		return errors.Wrap(err, "marshal registration events")
	}

	q := psql.Insert(
		im.Into("registrations",
			"id", "user_id", "user_email", "user_name", "user_phone", "user_college",
			"events", "amount", "payment_screenshot", "payment_status", "created_at"),
		im.Values(
			psql.Arg(reg.ID), psql.Arg(reg.UserID), psql.Arg(reg.UserEmail), psql.Arg(reg.UserName),
			psql.Arg(reg.UserPhone), psql.Arg(reg.UserCollege), psql.Arg(events), psql.Arg(reg.Amount),
			psql.Arg(reg.PaymentScreenshot), psql.Arg(reg.PaymentStatus), psql.Arg(reg.CreatedAt),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return err
}

func (p *pgxRegistrationRepository) Get(ctx context.Context, id string) (*Registration, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(registrationColumns...),
		sm.From("registrations"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate("registrations"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	reg, err := scanRegistration(e.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return reg, err
}

func (p *pgxRegistrationRepository) UpdateStatus(ctx context.Context, id string, status model.PaymentStatus) (*Registration, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("registrations"),
		um.SetCol("payment_status").ToArg(status),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(registrationColumns...),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	reg, err := scanRegistration(e.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return reg, err
}

// List returns every registration, newest first.
func (p *pgxRegistrationRepository) List(ctx context.Context) ([]*Registration, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(registrationColumns...),
		sm.From("registrations"),
		sm.OrderBy("created_at").Desc(),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Registration, error) {
		return scanRegistration(row)
	})
}

func scanRegistration(row pgx.Row) (*Registration, error) {
	reg := &Registration{}
	var events []byte
	if err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.UserEmail,
		&reg.UserName,
		&reg.UserPhone,
		&reg.UserCollege,
		&events,
		&reg.Amount,
		&reg.PaymentScreenshot,
		&reg.PaymentStatus,
		&reg.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(events) > 0 {
		if err := json.Unmarshal(events, &reg.Events); err != nil {
			return nil, errors.Wrap(err, "unmarshal registration events")
		}
	}
	return reg, nil
}
