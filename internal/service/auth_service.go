package service

import (
	"context"
	"errors"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// кастомные ошибки
var (
	ErrInvalidCredentials = errors.New("invalid passphrase")
	ErrAuthDisabled       = errors.New("authentication is not configured")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService interface {
	// Enabled false если хэш пароля не задан, тогда API открыт
	Enabled() bool
	Login(ctx context.Context, input *models.LoginRequest) (*models.AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Claims struct {
	jwt.RegisteredClaims
}

type authService struct {
	config *config.Config
	now    func() time.Time
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{config: cfg, now: time.Now}
}

func (s *authService) Enabled() bool {
	return s.config.PassphraseHash != ""
}

func (s *authService) Login(ctx context.Context, input *models.LoginRequest) (*models.AuthResponse, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}

	// Сравниваем пароль с его хэшем
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PassphraseHash), []byte(input.Passphrase)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateAccessToken()
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{AccessToken: token, ExpiresAt: expiresAt.Unix()}, nil
}

// валидация jwt-токена
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *authService) generateAccessToken() (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.AccessTokenExpiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "owner",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fin-mentor",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}
