package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Store interface {
	GetByID(ctx context.Context, id int64) (PublicUser, error)
	List(ctx context.Context) ([]PublicUser, error)
	GetCredentials(ctx context.Context, username string) (Credentials, error)
	SetLive(ctx context.Context, id int64, live bool) error

	// SwapAvatar replaces the user's avatar reference with newKey and
	// returns the reference that was current immediately before. The swap
	// is a single transaction; readers observe either the old or the new
	// reference, never an intermediate state.
	SwapAvatar(ctx context.Context, id int64, newKey string) (prev string, err error)
}
