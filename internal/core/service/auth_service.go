package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles login, logout and profile management against the
// remote API, persisting the resulting session locally.
type AuthService struct {
	gw    ports.Gateway
	store ports.SessionStore
	log   zerolog.Logger
}

func NewAuthService(gw ports.Gateway, store ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{gw: gw, store: store, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Message     string      `json:"message"`
	Data        domain.User `json:"data"`
}

// Login authenticates against /login and persists the session (token, user,
// role, division) on success. A response without an access token is treated
// as rejected credentials, regardless of HTTP status.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if email == "" || password == "" {
		return domain.Session{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	raw, err := s.gw.Call(ctx, "POST", pathLogin, loginRequest{Email: email, Password: password}, nil)
	if err != nil {
		// A 401 here is the server refusing the credentials, not an
		// expired session.
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.Session{}, fmt.Errorf("login: malformed response: %w", err)
	}
	if resp.AccessToken == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	session := domain.Session{Token: resp.AccessToken, User: resp.Data}
	if err := s.store.Set(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("login: persist session: %w", err)
	}

	s.log.Info().Str("email", email).Str("role", resp.Data.Role.Name).Msg("login succeeded")
	return session, nil
}

// Logout destroys the local session. Token, cached user, role and division
// are removed together.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Msg("session cleared")
	return nil
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// Profile fetches the current profile from /user and refreshes the cached
// copy without touching the token.
func (s *AuthService) Profile(ctx context.Context) (domain.User, error) {
	raw, err := s.gw.Call(ctx, "GET", pathUser, nil, nil)
	if err != nil {
		return domain.User{}, err
	}

	var resp dataEnvelope[domain.User]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.User{}, fmt.Errorf("profile: malformed response: %w", err)
	}

	if session, ok, _ := s.store.Get(ctx); ok {
		session.User = resp.Data
		if err := s.store.Set(ctx, session); err != nil {
			s.log.Warn().Err(err).Msg("failed to refresh cached profile")
		}
	}
	return resp.Data, nil
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateProfile edits name, email and phone via /user/update. The email
// format is checked client-side before any network call.
func (s *AuthService) UpdateProfile(ctx context.Context, name, email, phone string) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return domain.User{}, fmt.Errorf("%w: email format is invalid", domain.ErrValidation)
	}

	raw, err := s.gw.Call(ctx, "PUT", pathUserUpdate, updateProfileRequest{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
	}, nil)
	if err != nil {
		return domain.User{}, err
	}

	var resp dataEnvelope[domain.User]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.User{}, fmt.Errorf("update profile: malformed response: %w", err)
	}

	if session, ok, _ := s.store.Get(ctx); ok {
		session.User = resp.Data
		if err := s.store.Set(ctx, session); err != nil {
			s.log.Warn().Err(err).Msg("failed to refresh cached profile")
		}
	}
	return resp.Data, nil
}
