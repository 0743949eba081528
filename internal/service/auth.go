package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/platefinder/api/internal/auth"
	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/repository"
)

// ErrEmailAlreadyExists signals a registration conflict.
var ErrEmailAlreadyExists = errors.New("email already exists")

const minPasswordLength = 8

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users     repository.UsersRepository
	jwt       *auth.JWTManager
	validator *Validator
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager, validator *Validator) *AuthService {
	return &AuthService{users: users, jwt: jwtManager, validator: validator}
}

// Register creates a user account and returns a JWT for it.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	email, err := s.validator.NormalizeEmail(req.Email)
	if err != nil {
		return "", err
	}
	if len(req.Password) < minPasswordLength {
		return "", errors.New("password must be at least 8 characters")
	}

	var phone *string
	if strings.TrimSpace(req.Phone) != "" {
		normalized, err := s.validator.NormalizePhone(req.Phone)
		if err != nil {
			return "", err
		}
		phone = &normalized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, email, string(hash), "user", phone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return "", ErrEmailAlreadyExists
		}
		return "", err
	}

	return s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password must not be empty")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", errors.New("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", err
	}

	return token, nil
}
