package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

func TestLogin(t *testing.T) {
	user := domain.User{
		ID:    1,
		Name:  "Budi Santoso",
		Email: "driver@ptrekaindo.co.id",
		Role:  domain.Role{Name: "Driver", Division: domain.Division{Name: "Logistik"}},
	}

	gw := newStubGateway()
	gw.respond("POST", pathLogin, map[string]any{
		"access_token": "tok-123",
		"message":      "login successful",
		"data":         user,
	})
	st := &stubStore{}

	auth := NewAuthService(gw, st, zerolog.Nop())
	session, err := auth.Login(context.Background(), "driver@ptrekaindo.co.id", "rahasia123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if session.Token != "tok-123" {
		t.Fatalf("token = %q", session.Token)
	}
	if session.User.Role.Division.Name != "Logistik" {
		t.Fatalf("division = %q", session.User.Role.Division.Name)
	}

	stored, ok, err := st.Get(context.Background())
	if err != nil || !ok {
		t.Fatalf("stored session missing: ok=%v err=%v", ok, err)
	}
	if stored.Token != "tok-123" || stored.User.Name != "Budi Santoso" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestLoginWithoutTokenIsRejectedCredentials(t *testing.T) {
	gw := newStubGateway()
	gw.respond("POST", pathLogin, map[string]any{"message": "wrong password"})
	st := &stubStore{}

	auth := NewAuthService(gw, st, zerolog.Nop())
	_, err := auth.Login(context.Background(), "driver@ptrekaindo.co.id", "salah")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, ok, _ := st.Get(context.Background()); ok {
		t.Fatal("session stored after rejected login")
	}
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	gw := newStubGateway()
	auth := NewAuthService(gw, &stubStore{}, zerolog.Nop())

	if _, err := auth.Login(context.Background(), "", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, err := auth.Login(context.Background(), "a@b.c", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("calls = %d, want 0", len(gw.calls))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	st := &stubStore{}
	_ = st.Set(context.Background(), domain.Session{Token: "tok", User: domain.User{Name: "Budi"}})

	auth := NewAuthService(newStubGateway(), st, zerolog.Nop())
	if err := auth.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok, _ := st.Get(context.Background()); ok {
		t.Fatal("session survived logout")
	}
}

func TestProfileRefreshesCachedUser(t *testing.T) {
	updated := domain.User{ID: 1, Name: "Budi S.", Email: "driver@ptrekaindo.co.id"}

	gw := newStubGateway()
	gw.respond("GET", pathUser, map[string]any{"data": updated})
	st := &stubStore{}
	_ = st.Set(context.Background(), domain.Session{Token: "tok", User: domain.User{Name: "Budi"}})

	auth := NewAuthService(gw, st, zerolog.Nop())
	user, err := auth.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if user.Name != "Budi S." {
		t.Fatalf("name = %q", user.Name)
	}

	stored, _, _ := st.Get(context.Background())
	if stored.User.Name != "Budi S." {
		t.Fatalf("cached name = %q, want refreshed copy", stored.User.Name)
	}
	if stored.Token != "tok" {
		t.Fatal("token changed by profile refresh")
	}
}

func TestUpdateProfileValidatesBeforeNetwork(t *testing.T) {
	gw := newStubGateway()
	auth := NewAuthService(gw, &stubStore{}, zerolog.Nop())

	tests := []struct {
		name        string
		fullName    string
		email       string
	}{
		{"missing name", "", "driver@ptrekaindo.co.id"},
		{"bad email", "Budi", "not-an-email"},
		{"email without domain", "Budi", "budi@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.UpdateProfile(context.Background(), tt.fullName, tt.email, "")
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
	if len(gw.calls) != 0 {
		t.Fatalf("calls = %d, want 0", len(gw.calls))
	}
}

func TestUpdateProfile(t *testing.T) {
	updated := domain.User{ID: 1, Name: "Budi Santoso", Email: "budi@ptrekaindo.co.id", PhoneNumber: "0812"}

	gw := newStubGateway()
	gw.respond("PUT", pathUserUpdate, map[string]any{"data": updated})
	st := &stubStore{}
	_ = st.Set(context.Background(), domain.Session{Token: "tok"})

	auth := NewAuthService(gw, st, zerolog.Nop())
	user, err := auth.UpdateProfile(context.Background(), "Budi Santoso", "budi@ptrekaindo.co.id", "0812")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.PhoneNumber != "0812" {
		t.Fatalf("phone = %q", user.PhoneNumber)
	}

	stored, _, _ := st.Get(context.Background())
	if stored.User.Email != "budi@ptrekaindo.co.id" {
		t.Fatalf("cached email = %q", stored.User.Email)
	}
}

func TestAuthPropagatesSessionExpiry(t *testing.T) {
	gw := newStubGateway()
	gw.fail("GET", pathUser, &domain.APIError{Status: 401, Message: "session expired, please login again"})

	auth := NewAuthService(gw, &stubStore{}, zerolog.Nop())
	_, err := auth.Profile(context.Background())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}
