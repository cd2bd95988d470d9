package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type User struct {
	ID            string    `db:"id"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	College       string    `db:"college"`
	Department    string    `db:"department"`
	RulesAccepted bool      `db:"rules_accepted"`
	CreatedAt     time.Time `db:"created_at"`
}

type UserPatch struct {
	ID            string  `db:"id"`
	Name          *string `db:"name"`
	Phone         *string `db:"phone"`
	College       *string `db:"college"`
	Department    *string `db:"department"`
	RulesAccepted *bool   `db:"rules_accepted"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Patch(ctx context.Context, patch *UserPatch) (*User, error)
}

var userColumns = []any{
	"id", "email", "password_hash", "name", "phone", "college", "department", "rules_accepted", "created_at",
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgxUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgxUserRepository{pool: pool}
}

func (p *pgxUserRepository) Create(ctx context.Context, user *User) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("users", "id", "email", "password_hash", "name", "phone", "college", "department", "rules_accepted", "created_at"),
		im.Values(
			psql.Arg(user.ID), psql.Arg(user.Email), psql.Arg(user.PasswordHash), psql.Arg(user.Name),
			psql.Arg(user.Phone), psql.Arg(user.College), psql.Arg(user.Department),
			psql.Arg(user.RulesAccepted), psql.Arg(user.CreatedAt),
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

func (p *pgxUserRepository) Get(ctx context.Context, userID string) (*User, error) {
	return p.getBy(ctx, "id", userID)
}

func (p *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return p.getBy(ctx, "email", email)
}

func (p *pgxUserRepository) getBy(ctx context.Context, column, value string) (*User, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote(column).EQ(psql.Arg(value))),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(e.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (p *pgxUserRepository) Patch(ctx context.Context, patch *UserPatch) (*User, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	sets := make([]bob.Mod[*dialect.UpdateQuery], 0, 5)

	if patch.Name != nil {
		sets = append(sets, um.SetCol("name").ToArg(*patch.Name))
	}
	if patch.Phone != nil {
		sets = append(sets, um.SetCol("phone").ToArg(*patch.Phone))
	}
	if patch.College != nil {
		sets = append(sets, um.SetCol("college").ToArg(*patch.College))
	}
	if patch.Department != nil {
		sets = append(sets, um.SetCol("department").ToArg(*patch.Department))
	}
	if patch.RulesAccepted != nil {
		sets = append(sets, um.SetCol("rules_accepted").ToArg(*patch.RulesAccepted))
	}

	if len(sets) == 0 {
		return p.Get(ctx, patch.ID)
	}

	q := psql.Update(
		um.Table("users"),
		um.Where(psql.Quote("id").EQ(psql.Arg(patch.ID))),
		um.Returning(userColumns...),
	)

	q.Apply(sets...)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(e.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Phone,
		&u.College,
		&u.Department,
		&u.RulesAccepted,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}
