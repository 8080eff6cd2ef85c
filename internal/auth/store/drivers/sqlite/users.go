package sqlite

import (
	"context"
	"database/sql"

	"github.com/brandu/auth/internal/auth/domain"
)

const userColumns = `id, username, nickname, email, password_hash, avatar_url,
	provider, role, email_verified, locked, created_at, updated_at`

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) getBy(ctx context.Context, where string, arg any) (domain.User, error) {
	var row userRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(
		&row.ID, &row.Username, &row.Nickname, &row.Email, &row.PasswordHash,
		&row.AvatarURL, &row.Provider, &row.Role, &row.EmailVerified,
		&row.Locked, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getBy(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getBy(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, `email = ?`, email)
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE username = ?`, username,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, nickname, email, password_hash,
			avatar_url, provider, role, email_verified, locked)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Nickname, u.Email, u.PasswordHash,
		u.AvatarURL, string(u.Provider), string(u.Role), u.EmailVerified, u.Locked,
	)
	return mapConstraint(err)
}

func (r *usersRepo) SetEmailVerified(ctx context.Context, userID string, verified bool) error {
	return r.update(ctx, `email_verified = ?`, verified, userID)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.update(ctx, `password_hash = ?`, newHash, userID)
}

func (r *usersRepo) SetLocked(ctx context.Context, userID string, locked bool) error {
	return r.update(ctx, `locked = ?`, locked, userID)
}

func (r *usersRepo) update(ctx context.Context, set string, val any, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+set+`, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		val, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
