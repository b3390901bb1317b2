package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrInvalidCredentials cubre email inexistente y password incorrecta
	// con el mismo error: no filtramos cuáles emails existen.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("account not found")
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

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Contact  string
}

// Register crea la cuenta con la password hasheada (bcrypt, cost default).
// El email se normaliza a minúsculas antes de guardar y de buscar, así la
// unicidad no depende de cómo lo tipeó el usuario.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return Account{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	now := s.now()
	a := Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         RoleUser,
		PasswordHash: hash,
		Contact:      strings.TrimSpace(in.Contact),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Authenticate verifica email+password. bcrypt.CompareHashAndPassword ya es
// timing-safe; no hay comparación de strings en ningún camino.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	a, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}

	if bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Account, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
