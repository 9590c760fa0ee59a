// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/baharkarakas/ong-backend/internal/models"
	"github.com/baharkarakas/ong-backend/internal/repository"
)

type usersRepo struct{ db DB }

func NewUsers(db DB) repository.Users {
	return &usersRepo{db: db}
}

const userCols = `id, username, email, password_hash, created_at`

// constraint names from migrations/00001_init.sql
var userUniqueFields = map[string]string{
	"users_email_key":    "email",
	"users_username_key": "username",
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash) VALUES($1,$2,$3,$4) RETURNING created_at`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		if pgErr, ok := uniqueViolation(err); ok {
			if field, known := userUniqueFields[pgErr.ConstraintName]; known {
				return models.User{}, &repository.DuplicateError{Field: field}
			}
		}
		return models.User{}, oops.Code("USER_CREATE_FAILED").
			With("username", u.Username).
			Wrap(err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, repository.ErrNotFound
	}
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
	return u, wrapUserErr(err, "USER_GET_BY_ID_FAILED", "id", id)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
	return u, wrapUserErr(err, "USER_GET_BY_EMAIL_FAILED", "email", email)
}

func (r *usersRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1 OR username=$2 ORDER BY (email=$1) DESC LIMIT 1`,
		email, username,
	))
	return u, wrapUserErr(err, "USER_FIND_FAILED", "email", email)
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").Wrap(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_LIST_FAILED").With("operation", "scan").Wrap(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").Wrap(err)
	}
	return out, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func wrapUserErr(err error, code, key, val string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return oops.Code(code).With(key, val).Wrap(err)
}
