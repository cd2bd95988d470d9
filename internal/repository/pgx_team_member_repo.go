package repository

import (
	"context"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type TeamMember struct {
	RegistrationID string `db:"registration_id"`
	EventID        string `db:"event_id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
	PhoneNumber    string `db:"phone_number"`
	ScreenshotURL  string `db:"screenshot_url"`
}

type TeamMemberRepository interface {
	CreateBatch(ctx context.Context, members []*TeamMember) error
	List(ctx context.Context) ([]*TeamMember, error)
}

type pgxTeamMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTeamMemberRepository(pool *pgxpool.Pool) TeamMemberRepository {
	return &pgxTeamMemberRepository{pool: pool}
}

func (p *pgxTeamMemberRepository) CreateBatch(ctx context.Context, members []*TeamMember) error {
	if len(members) == 0 {
		return nil
	}

	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("team_members", "registration_id", "event_id", "name", "email", "phone_number", "screenshot_url"),
	)

	for _, m := range members {
		q.Apply(im.Values(
			psql.Arg(m.RegistrationID), psql.Arg(m.EventID), psql.Arg(m.Name),
			psql.Arg(m.Email), psql.Arg(m.PhoneNumber), psql.Arg(m.ScreenshotURL),
		))
	}

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return err
	}

	return nil
}

func (p *pgxTeamMemberRepository) List(ctx context.Context) ([]*TeamMember, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("registration_id", "event_id", "name", "email", "phone_number", "screenshot_url"),
		sm.From("team_members"),
		sm.OrderBy("id"),
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

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*TeamMember, error) {
		m := &TeamMember{}
		if err := row.Scan(&m.RegistrationID, &m.EventID, &m.Name, &m.Email, &m.PhoneNumber, &m.ScreenshotURL); err != nil {
			return nil, err
		}
		return m, nil
	})
}
