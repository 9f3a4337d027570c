package account

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/memdb"
	userrepo "storefront/internal/repository/user"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(userrepo.NewMemory(memdb.New()))
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newService(t)
	u, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "s3cret" || u.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Username: "", Password: "x"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "bob", Password: "  "}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "x1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "x2"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "s3cret"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil || u.Username != "alice" {
		t.Fatalf("Login: %v %+v", err, u)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	// Unknown user reads the same as a wrong password.
	if _, err := svc.Login(ctx, "mallory", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	created, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "x", Name: "Alice", City: "Boston"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	email := "alice@example.com"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Email: &email})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email != email || updated.Name != "Alice" || updated.City != "Boston" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	if _, err := svc.Update(ctx, 999, UpdateInput{Email: &email}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
