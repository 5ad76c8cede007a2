package user

import (
	"context"
	"database/sql"
	"errors"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

const publicCols = `id, username, nickname, email, live, avatar, created_at, is_oauth`

func (s *SQLStore) GetByID(ctx context.Context, id int64) (PublicUser, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+publicCols+` FROM users WHERE id=$1`, id)
	u, err := scanPublic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PublicUser{}, ErrNotFound
	}
	return u, err
}

func (s *SQLStore) List(ctx context.Context) ([]PublicUser, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+publicCols+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PublicUser{}
	for rows.Next() {
		u, err := scanPublic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetCredentials(ctx context.Context, username string) (Credentials, error) {
	var c Credentials
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username=$1`, username).
		Scan(&c.ID, &c.Username, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, ErrNotFound
	}
	return c, err
}

func (s *SQLStore) SetLive(ctx context.Context, id int64, live bool) error {
	v := 0
	if live {
		v = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET live=$1 WHERE id=$2`, v, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) SwapAvatar(ctx context.Context, id int64, newKey string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var prev string
	err = tx.QueryRowContext(ctx, `SELECT avatar FROM users WHERE id=$1`, id).Scan(&prev)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET avatar=$1 WHERE id=$2`, newKey, id); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return prev, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPublic(row scanner) (PublicUser, error) {
	var u PublicUser
	err := row.Scan(&u.ID, &u.Username, &u.Nickname, &u.Email, &u.Live,
		&u.Avatar, &u.CreatedAt, &u.IsOAuth)
	return u, err
}
