package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/careops/hospitalops/internal/auth"
	"github.com/careops/hospitalops/internal/config"
	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/repository"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	units      repository.UnitRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	UnitRepo repository.UnitRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		units:      deps.UnitRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterInput describes a new operator account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       domain.Role
	Department string
	UnitID     string
}

// Register creates an operator account bound to a unit. Only admins call
// this; the route guard enforces it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if email == "" {
		details["email"] = "required"
	}
	if len(input.Password) < 8 {
		details["password"] = "minimum 8 characters"
	}
	if !input.Role.IsValid() {
		details["role"] = "unknown role"
	}
	if strings.TrimSpace(input.UnitID) == "" {
		details["unit_id"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid account", details)
	}

	if _, err := s.units.GetByID(ctx, input.UnitID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("unit", map[string]any{"unit_id": input.UnitID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Department:   input.Department,
		UnitID:       input.UnitID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates an operator and issues a session token carrying
// {id, role, unitId}.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// ListAssignable returns the active employees of a unit, for the assignment
// picker.
func (s *AuthService) ListAssignable(ctx context.Context, unitID string) ([]domain.User, error) {
	role := domain.RoleEmployee
	active := true
	users, err := s.users.List(ctx, repository.UserFilter{
		UnitID: unitID,
		Role:   &role,
		Active: &active,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
