package animals

import "context"

// Repository es el colaborador de persistencia.
// GetByID, Update y Delete devuelven ErrNotFound cuando el id no existe.
type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
}
