package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/repository"
	"carlink-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.RefreshTokenRepository
	tokenManager security.TokenManager
	refreshTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	tokenManager security.TokenManager,
	refreshTTLMinutes int,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenManager: tokenManager,
		refreshTTL:   time.Duration(refreshTTLMinutes) * time.Minute,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.NewInvalidOperation("signup", "email is already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(ctx, u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// The JWT must also match a live row in the durable session store;
	// revocation and restarts are handled there, not in process memory.
	rec, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", security.ErrInvalidToken
		}
		return "", "", err
	}
	if rec.RevokedAt != nil || time.Now().After(rec.ExpiresAt) {
		return "", "", security.ErrExpiredToken
	}

	u, err := s.userRepo.GetByID(ctx, rec.UserID)
	if err != nil {
		return "", "", err
	}

	// Rotate: the old session dies the moment a new pair is issued.
	if err := s.tokenRepo.Revoke(ctx, rec.TokenHash); err != nil {
		return "", "", err
	}
	return s.issueTokens(ctx, u)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Revoke(ctx, hashToken(refreshToken))
}

func (s *authService) issueTokens(ctx context.Context, u *domain.User) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return "", "", err
	}

	rec := &domain.RefreshToken{
		UserID:    u.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(ctx, rec); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
