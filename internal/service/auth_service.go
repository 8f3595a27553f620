package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/valdisnipers-collab/immuno-survey/internal/config"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/valdisnipers-collab/immuno-survey/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Demo-mode credential pair. Any other pair is rejected when no backend is
// configured.
const (
	DemoEmail    = "admin"
	DemoPassword = "admin"
)

// TokenTypeAdmin is the only token type this service issues; session presence
// gates the admin editor, with no role granularity beyond that.
const TokenTypeAdmin = "admin"

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
}

// AuthService handles admin authentication and JWT lifecycle.
type AuthService struct {
	cfg    *config.Config
	admins repository.AdminStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, admins repository.AdminStore) *AuthService {
	return &AuthService{cfg: cfg, admins: admins}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login validates a credential pair and returns the admin with a signed JWT.
// In demo mode only the fixed admin/admin pair succeeds, against a synthetic
// account held purely in memory.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	if s.cfg.DemoMode() {
		if email != DemoEmail || password != DemoPassword {
			return nil, "", ErrInvalidCredentials
		}
		admin := &model.Admin{ID: 1, Name: "Demo Admin", Email: "demo@local"}
		token, err := s.GenerateAdminToken(admin)
		return admin, token, err
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.CheckPassword(admin.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateAdminToken(admin)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return admin, token, nil
}

// GenerateAdminToken creates a signed JWT for an admin.
func (s *AuthService) GenerateAdminToken(admin *model.Admin) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(admin.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeAdmin,
		UserID:    admin.ID,
		Email:     admin.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
