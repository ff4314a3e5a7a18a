package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

type stubDenylist struct {
	denied map[string]time.Time
	err    error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{denied: make(map[string]time.Time)}
}

func (d *stubDenylist) Deny(_ context.Context, token string, until time.Time) error {
	if d.err != nil {
		return d.err
	}
	d.denied[token] = until
	return nil
}

func (d *stubDenylist) IsDenied(_ context.Context, token string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.denied[token]
	return ok, nil
}

func seedAccount(t *testing.T, repo *stubAccountRepo, username, password string) *domain.Usuario {
	t.Helper()
	svc := NewAccountService(repo, zerolog.Nop())
	user, err := svc.Create(ctxAs("root.dev"), ports.CreateAccountInput{Username: username, Password: password})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	user := seedAccount(t, repo, "alice.gestor", "pass123")
	svc := NewAuthService(repo, newStubDenylist(), "secret", time.Hour)

	token, got, err := svc.Login(context.Background(), "alice.gestor", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims["username"] != "alice.gestor" {
		t.Fatalf("username claim missing, got %v", claims["username"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	seedAccount(t, repo, "alice.gestor", "pass123")
	svc := NewAuthService(repo, newStubDenylist(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "alice.gestor", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), newStubDenylist(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost.view", "x"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), newStubDenylist(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_DenylistsToken(t *testing.T) {
	repo := newStubAccountRepo()
	seedAccount(t, repo, "alice.gestor", "pass123")
	denylist := newStubDenylist()
	svc := NewAuthService(repo, denylist, "secret", time.Hour)

	token, _, err := svc.Login(context.Background(), "alice.gestor", "pass123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	denied, err := denylist.IsDenied(context.Background(), token)
	if err != nil || !denied {
		t.Fatalf("token not denylisted after logout")
	}
	until := denylist.denied[token]
	if until.Before(time.Now().Add(50 * time.Minute)) {
		t.Fatalf("denylist entry should last until token expiry, got %v", until)
	}
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), newStubDenylist(), "secret", time.Hour)

	if err := svc.Logout(context.Background(), "not-a-token"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_Logout_WrongSecret(t *testing.T) {
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice.gestor",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewAuthService(newStubAccountRepo(), newStubDenylist(), "secret", time.Hour)
	if err := svc.Logout(context.Background(), signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
