package animals

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	Age          int
	Type         string
	Breed        string
	OwnerName    string
	OwnerContact string
}

// Create registra un animal para ownerID. El owner es siempre el caller
// autenticado: el input no trae ownerId y aunque lo trajera, no se usa.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Breed) == "" {
		return Animal{}, ErrInvalidInput
	}
	if !ValidType(in.Type) || in.Age < 0 {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(in.Name),
		Age:          in.Age,
		Type:         AnimalType(in.Type),
		Breed:        strings.TrimSpace(in.Breed),
		OwnerName:    strings.TrimSpace(in.OwnerName),
		OwnerContact: strings.TrimSpace(in.OwnerContact),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// List devuelve la colección completa para cualquier sujeto autenticado.
// El filtro q es substring case-insensitive sobre nombre y nombre del owner;
// filtrar nunca restringe por ownership. El filtrado vive acá (y no en cada
// adapter) para que memory y postgres compartan exactamente la misma semántica.
func (s *Service) List(ctx context.Context, q string) ([]Animal, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items, nil
	}

	out := make([]Animal, 0, len(items))
	for _, a := range items {
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.OwnerName), q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	Age          *int
	Type         *string
	Breed        *string
	OwnerName    *string
	OwnerContact *string
}

// Update aplica un patch parcial. Orden fijo: primero existencia (NotFound),
// después ownership (Forbidden), recién entonces se muta. OwnerID no cambia
// nunca, venga lo que venga en el patch.
func (s *Service) Update(ctx context.Context, id, callerID string, in UpdateInput) (Animal, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if !CanWrite(callerID, current) {
		return Animal{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Animal{}, ErrInvalidInput
		}
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Animal{}, ErrInvalidInput
		}
		current.Age = *in.Age
	}
	if in.Type != nil {
		if !ValidType(*in.Type) {
			return Animal{}, ErrInvalidInput
		}
		current.Type = AnimalType(*in.Type)
	}
	if in.Breed != nil {
		if strings.TrimSpace(*in.Breed) == "" {
			return Animal{}, ErrInvalidInput
		}
		current.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.OwnerName != nil {
		if strings.TrimSpace(*in.OwnerName) == "" {
			return Animal{}, ErrInvalidInput
		}
		current.OwnerName = strings.TrimSpace(*in.OwnerName)
	}
	if in.OwnerContact != nil {
		current.OwnerContact = strings.TrimSpace(*in.OwnerContact)
	}

	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Animal{}, err
	}
	return current, nil
}

// Delete borra con la misma regla que Update: existencia y después ownership.
// Devuelve el registro borrado (el frontend lo muestra en la confirmación).
func (s *Service) Delete(ctx context.Context, id, callerID string) (Animal, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if !CanWrite(callerID, current) {
		return Animal{}, ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return Animal{}, err
	}
	return current, nil
}

// Stats computa el agregado sobre la colección completa. Colección vacía
// devuelve todo en cero; el promedio jamás divide por cero.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Total: len(items)}
	sum := 0
	for _, a := range items {
		sum += a.Age
		switch a.Type {
		case TypeDog:
			st.Dogs++
		case TypeCat:
			st.Cats++
		}
	}

	if st.Total > 0 {
		mean := float64(sum) / float64(st.Total)
		st.AvgAge = math.Round(mean*10) / 10
	}
	return st, nil
}
