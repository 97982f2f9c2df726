package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
	"github.com/dmitrijs2005/receiptkeeper/internal/common"
)

// AuthService defines account operations for the CLI.
//
// Login and Register hand the issued token to the session store, which
// loads the profile and notifies listeners. Rename and ChangePassword need
// an authenticated session.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, email, password1, password2 string) error
	Logout(ctx context.Context)
	Rename(ctx context.Context, username string) error
	ChangePassword(ctx context.Context, password string) error
}

type authService struct {
	api     client.Client
	session *session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and session.
func NewAuthService(api client.Client, sess *session.Store) AuthService {
	return &authService{api: api, session: sess}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("email and password: %w", common.ErrEmptyField)
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return a.session.Login(ctx, token)
}

// Register checks that both passwords match before contacting the server.
func (a *authService) Register(ctx context.Context, username, email, password1, password2 string) error {
	if password1 != password2 {
		return common.ErrPasswordMismatch
	}
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password1 == "" {
		return fmt.Errorf("username, email and password: %w", common.ErrEmptyField)
	}

	token, err := a.api.Register(ctx, models.RegistrationRequest{
		Username:  username,
		Email:     email,
		Password1: password1,
		Password2: password2,
	})
	if err != nil {
		return fmt.Errorf("registration error: %w", err)
	}
	return a.session.Login(ctx, token)
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}

// Rename changes the username and reloads the profile.
func (a *authService) Rename(ctx context.Context, username string) error {
	token, err := requireToken(a.session)
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username: %w", common.ErrEmptyField)
	}

	if err := a.api.UpdateProfile(ctx, token, models.ProfileUpdate{Username: username}); err != nil {
		return fmt.Errorf("rename error: %w", err)
	}
	a.session.FetchUser(ctx)
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, password string) error {
	token, err := requireToken(a.session)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password: %w", common.ErrEmptyField)
	}

	if err := a.api.ChangePassword(ctx, token, password); err != nil {
		return fmt.Errorf("password change error: %w", err)
	}
	return nil
}

func requireToken(s *session.Store) (string, error) {
	token := s.Token()
	if token == "" {
		return "", common.ErrNotAuthenticated
	}
	return token, nil
}
