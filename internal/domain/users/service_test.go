package users

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byID    map[string]User
	byEmail map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}, byEmail: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, taken := r.byEmail[u.Email]; taken {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func TestService_Register_OK(t *testing.T) {
	svc := NewService(newTestRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "secret1",
		Name:     "Ana",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected role user, got %s", u.Role)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret1" {
		t.Fatal("expected hashed password")
	}
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []RegisterInput{
		{Email: "", Password: "secret1", Name: "Ana"},
		{Email: "not-an-email", Password: "secret1", Name: "Ana"},
		{Email: "ana@example.com", Password: "short", Name: "Ana"},
		{Email: "ana@example.com", Password: "secret1", Name: "  "},
	}

	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	in := RegisterInput{Email: "ana@example.com", Password: "secret1", Name: "Ana"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Misma cuenta con otra capitalización: sigue siendo duplicado.
	in.Email = "ANA@example.com"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "secret1",
		Name:     "Ana",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "ana@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	// Email desconocido: mismo error, sin filtrar si la cuenta existe.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_EnsureAdmin(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, created, err := svc.EnsureAdmin(context.Background(), "admin@petadoption.com", "Admin123", "Admin User")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !created {
		t.Fatal("expected fresh admin account")
	}
	if u.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", u.Role)
	}

	// Segunda corrida: idempotente.
	again, created, err := svc.EnsureAdmin(context.Background(), "admin@petadoption.com", "Admin123", "Admin User")
	if err != nil {
		t.Fatalf("ensure admin twice: %v", err)
	}
	if created {
		t.Fatal("expected existing account")
	}
	if again.ID != u.ID {
		t.Fatalf("expected same account, got %s vs %s", again.ID, u.ID)
	}
}

func TestService_EnsureAdmin_PromotesExistingUser(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "secret1",
		Name:     "Ana",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	promoted, created, err := svc.EnsureAdmin(context.Background(), "ana@example.com", "ignored", "ignored")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if created {
		t.Fatal("expected promotion, not creation")
	}
	if promoted.ID != u.ID || promoted.Role != RoleAdmin {
		t.Fatalf("expected promoted account, got %+v", promoted)
	}
}
