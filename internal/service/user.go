package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/entity"
	"github.com/platefinder/api/internal/repository"
)

var allowedRoles = map[string]bool{
	"user":  true,
	"admin": true,
}

// UserService encapsulates administrative operations for users.
type UserService struct {
	repo      repository.UsersRepository
	validator *Validator
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository, validator *Validator) *UserService {
	return &UserService{repo: repo, validator: validator}
}

func toUserResponse(user *entity.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}
	if user.Phone != nil {
		resp.Phone = *user.Phone
	}
	return resp
}

// ListUsers returns all users as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

// CreateUser creates a new user with the supplied role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email, err := s.validator.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, errors.New("password must be at least 8 characters")
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "user"
	}
	if !allowedRoles[role] {
		return nil, fmt.Errorf("unsupported role: %s", role)
	}

	var phone *string
	if strings.TrimSpace(req.Phone) != "" {
		normalized, err := s.validator.NormalizePhone(req.Phone)
		if err != nil {
			return nil, err
		}
		phone = &normalized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, email, string(hash), role, phone)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateUser applies a partial update to a user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var email, passwordHash, role, phone *string

	if req.Email != nil {
		normalized, err := s.validator.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		email = &normalized
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		passwordHash = &hashed
	}
	if req.Role != nil {
		if !allowedRoles[*req.Role] {
			return nil, fmt.Errorf("unsupported role: %s", *req.Role)
		}
		role = req.Role
	}
	if req.Phone != nil {
		normalized, err := s.validator.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		phone = &normalized
	}

	user, err := s.repo.Update(ctx, id, email, passwordHash, role, phone)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
