package users

import "context"

type Repository interface {
	// Create debe devolver ErrEmailTaken si ya existe una cuenta con ese email.
	Create(ctx context.Context, a Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
}
