package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/careops/hospitalops/internal/config"
	"github.com/careops/hospitalops/internal/domain"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

func newAuthHarness(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := &fakeUserRepo{users: map[string]domain.User{}}
	units := &fakeUnitRepo{units: map[string]domain.Unit{
		"unit-1": {ID: "unit-1", Name: "St. Catherine General"},
	}}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, UnitRepo: units}), users
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Dana Reyes",
		Email:    "Dana.Reyes@Example.com",
		Password: "s3cret-pass",
		Role:     domain.RoleEmployee,
		UnitID:   "unit-1",
	}
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	auth, _ := newAuthHarness(t)

	user, err := auth.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "dana.reyes@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if !user.Active {
		t.Error("Active = false, want new accounts active")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in clear")
	}

	logged, token, _, err := auth.Login(context.Background(), "dana.reyes@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged-in user = %q, want %q", logged.ID, user.ID)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := auth.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.UnitID != "unit-1" {
		t.Errorf("claims = %+v, want user and unit bound", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthHarness(t)
	if _, err := auth.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := auth.Register(context.Background(), registerInput())
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("duplicate Register error = %v, want CONFLICT", err)
	}
}

func TestRegisterUnknownUnit(t *testing.T) {
	auth, _ := newAuthHarness(t)
	input := registerInput()
	input.UnitID = "unit-404"
	_, err := auth.Register(context.Background(), input)
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("Register with unknown unit error = %v, want NOT_FOUND", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	auth, _ := newAuthHarness(t)
	input := registerInput()
	input.Password = "short"
	_, err := auth.Register(context.Background(), input)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("Register error = %v, want VALIDATION_FAILED", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthHarness(t)
	if _, err := auth.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, _, err := auth.Login(context.Background(), "dana.reyes@example.com", "wrong")
	if !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("Login error = %v, want UNAUTHORIZED", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	auth, users := newAuthHarness(t)
	user, err := auth.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	user.Active = false
	if err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, _, _, err = auth.Login(context.Background(), "dana.reyes@example.com", "s3cret-pass")
	if !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Fatalf("Login error = %v, want UNAUTHORIZED", err)
	}
}

func TestListAssignableOnlyActiveEmployees(t *testing.T) {
	auth, users := newAuthHarness(t)
	seed := []domain.User{
		{ID: "e1", Role: domain.RoleEmployee, UnitID: "unit-1", Active: true},
		{ID: "e2", Role: domain.RoleEmployee, UnitID: "unit-1", Active: false},
		{ID: "m1", Role: domain.RoleManager, UnitID: "unit-1", Active: true},
		{ID: "e3", Role: domain.RoleEmployee, UnitID: "unit-2", Active: true},
	}
	for i := range seed {
		users.users[seed[i].ID] = seed[i]
	}

	assignable, err := auth.ListAssignable(context.Background(), "unit-1")
	if err != nil {
		t.Fatalf("ListAssignable: %v", err)
	}
	if len(assignable) != 1 || assignable[0].ID != "e1" {
		t.Fatalf("ListAssignable = %v, want exactly e1", assignable)
	}
}
