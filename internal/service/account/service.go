package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

// ErrInvalidCredentials is returned when username/password do not match. It
// is deliberately the same for an unknown username and a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service handles registration, login, and profile reads/updates. Passwords
// are stored as bcrypt hashes only.
type Service struct {
	repo userrepo.Repository
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput mirrors the registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.Invalid("username", "required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, domain.Invalid("password", "required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, domain.User{
		Username:     username,
		PasswordHash: string(hashed),
		Name:         in.Name,
		Email:        in.Email,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.Invalid("credentials", "username and password are required")
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput mirrors the profile update payload; absent fields are left
// untouched. Username and password are not updatable here.
type UpdateInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (*domain.User, error) {
	return s.repo.Update(ctx, id, userrepo.UpdateInput{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
	})
}
