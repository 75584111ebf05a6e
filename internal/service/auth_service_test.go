package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"risk_screening_backend/internal/config"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/util"
)

func testAuthConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, testAuthConfig())
	ctx := context.Background()

	u := &model.User{Name: "Sam", Email: "  Sam@Example.com ", Password: "Secret123", Role: model.RoleAdmin}
	if err := svc.Register(ctx, u); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "sam@example.com" || u.Role != model.RoleUser || u.Password == "Secret123" {
		t.Fatalf("registered user = %+v", u)
	}

	dup := &model.User{Name: "Sam", Email: "sam@example.com", Password: "another1"}
	if err := svc.Register(ctx, dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}

	token, user, err := svc.Login(ctx, "SAM@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.LastLogin == nil {
		t.Fatalf("lastLogin not set")
	}
	if _, ok := users.lastLogin[user.ID]; !ok {
		t.Fatalf("lastLogin not persisted")
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.RoleUser {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAuthLoginFailures(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, testAuthConfig())
	ctx := context.Background()

	if err := svc.Register(ctx, &model.User{Name: "Kai", Email: "kai@example.com", Password: "Secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "kai@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "Secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}

	stored, _ := users.FindByEmail(ctx, "kai@example.com")
	users.byID[stored.ID].Disabled = true
	if _, _, err := svc.Login(ctx, "kai@example.com", "Secret123"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("disabled user err = %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, testAuthConfig())
	_ = users.Create(context.Background(), &model.User{Name: "Rin", Email: "rin@example.com"})

	u, err := svc.CurrentUser(context.Background(), 1)
	if err != nil || u.Name != "Rin" {
		t.Fatalf("CurrentUser = %+v, %v", u, err)
	}
	if _, err := svc.CurrentUser(context.Background(), 2); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
