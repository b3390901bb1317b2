package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-shop-api/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, a users.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, role,
			password_hash, contact,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		a.ID,
		a.Name,
		a.Email,
		string(a.Role),
		a.PasswordHash,
		a.Contact,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		// 23505 = unique_violation: el índice único de email es quien
		// garantiza la invariante, acá solo lo traducimos al error de dominio.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return users.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return users.Account{}, users.ErrNotFound
	}

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, contact, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.Account{}, users.ErrNotFound
	}

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, contact, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UsersRepo) scanOne(row *sql.Row) (users.Account, error) {
	var a users.Account
	var role string
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&role,
		&a.PasswordHash,
		&a.Contact,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.Account{}, users.ErrNotFound
		}
		return users.Account{}, err
	}
	a.Role = users.Role(role)
	return a, nil
}
