package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valdisnipers-collab/immuno-survey/internal/config"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
)

type stubAdminStore struct {
	admins map[string]*model.Admin
}

func (s *stubAdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	admin, ok := s.admins[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return admin, nil
}

func (s *stubAdminStore) Create(_ context.Context, admin *model.Admin) error {
	s.admins[admin.Email] = admin
	return nil
}

func demoConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}
}

func TestDemoLoginFixedPair(t *testing.T) {
	svc := NewAuthService(demoConfig(), nil)

	admin, token, err := svc.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	if admin == nil || token == "" {
		t.Fatal("demo login returned no admin or token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.TokenType != TokenTypeAdmin {
		t.Fatalf("token type = %q", claims.TokenType)
	}
}

func TestDemoLoginRejectsOtherPairs(t *testing.T) {
	svc := NewAuthService(demoConfig(), nil)

	pairs := [][2]string{
		{"admin", "wrong"},
		{"wrong", "admin"},
		{"", ""},
		{"admin@example.com", "password123"},
	}
	for _, p := range pairs {
		if _, _, err := svc.Login(context.Background(), p[0], p[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%q/%q: expected ErrInvalidCredentials, got %v", p[0], p[1], err)
		}
	}
}

func TestConfiguredLoginChecksHash(t *testing.T) {
	cfg := demoConfig()
	cfg.DatabaseURL = "postgres://localhost/survey"

	store := &stubAdminStore{admins: make(map[string]*model.Admin)}
	svc := NewAuthService(cfg, store)

	hash, err := svc.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	store.admins["editor@example.com"] = &model.Admin{ID: 7, Email: "editor@example.com", PasswordHash: hash}

	admin, token, err := svc.Login(context.Background(), "editor@example.com", "correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if admin.ID != 7 || token == "" {
		t.Fatalf("login returned admin=%+v token=%q", admin, token)
	}

	if _, _, err := svc.Login(context.Background(), "editor@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	// The fixed demo pair carries no weight in configured mode.
	if _, _, err := svc.Login(context.Background(), "admin", "admin"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("demo pair accepted in configured mode: %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewAuthService(demoConfig(), nil)

	_, token, err := svc.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered token validated")
	}

	other := demoConfig()
	other.JWTSecret = "different-secret"
	if _, err := NewAuthService(other, nil).ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret validated")
	}
}
