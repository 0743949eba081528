package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/platefinder/api/internal/auth"
	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/entity"
	"github.com/platefinder/api/internal/repository"
	"github.com/platefinder/api/internal/service"
)

type usersRepoStub struct {
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	createFn      func(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error)
	listFn        func(ctx context.Context) ([]entity.User, error)
	updateFn      func(ctx context.Context, id uuid.UUID, email, passwordHash, role, phone *string) (*entity.User, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (s *usersRepoStub) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.findByEmailFn(ctx, email)
}

func (s *usersRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *usersRepoStub) Create(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error) {
	return s.createFn(ctx, email, passwordHash, role, phone)
}

func (s *usersRepoStub) List(ctx context.Context) ([]entity.User, error) {
	return s.listFn(ctx)
}

func (s *usersRepoStub) Update(ctx context.Context, id uuid.UUID, email, passwordHash, role, phone *string) (*entity.User, error) {
	return s.updateFn(ctx, id, email, passwordHash, role, phone)
}

func (s *usersRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func newAuthHandler(repo repository.UsersRepository) *AuthHandler {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthHandler(service.NewAuthService(repo, jwtManager, service.NewValidator("TW")))
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("requires email and password", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/register", `{"email":"","password":""}`)

		if err := h.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/register", `{"email":"a@example.com","password":"short"}`)

		if err := h.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{
			createFn: func(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error) {
				return nil, repository.ErrEmailDuplicate
			},
		})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/register", `{"email":"dup@example.com","password":"password123"}`)

		if err := h.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("issues token on success", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{
			createFn: func(ctx context.Context, email, passwordHash, role string, phone *string) (*entity.User, error) {
				return &entity.User{ID: uuid.New(), Email: email, Role: role}, nil
			},
		})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/register", `{"email":"new@example.com","password":"password123"}`)

		if err := h.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var resp struct {
			Data dto.LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Data.AccessToken == "" {
			t.Fatalf("expected access token in response")
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	stored := &entity.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: string(hash), Role: "user"}

	t.Run("wrong password unauthorized", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{
			findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/login", `{"email":"user@example.com","password":"wrong"}`)

		if err := h.Login(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown user unauthorized", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{
			findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, repository.ErrUserNotFound
			},
		})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/login", `{"email":"missing@example.com","password":"whatever12"}`)

		if err := h.Login(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("success returns token", func(t *testing.T) {
		h := newAuthHandler(&usersRepoStub{
			findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return stored, nil
			},
		})
		c, rec := newJSONContext(t, http.MethodPost, "/auth/login", `{"email":"user@example.com","password":"correct-password"}`)

		if err := h.Login(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			Data dto.LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Data.AccessToken == "" {
			t.Fatalf("expected access token in response")
		}
	})
}
