package models

import "errors"

// User is the authenticated profile returned by GET /auth/user/.
// It is never persisted; it is always re-derived from the credential token.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Validate() error {
	if u.ID <= 0 {
		return errors.New("user id must be positive")
	}
	if u.Username == "" && u.Email == "" {
		return errors.New("user has neither username nor email")
	}
	return nil
}

// Clone returns a copy so callers can't mutate session state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ProfileUpdate is the PATCH /auth/user/ body.
type ProfileUpdate struct {
	Username string `json:"username"`
}

// PasswordChange is the POST /auth/password/ body.
type PasswordChange struct {
	Password string `json:"password"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token issued on login.
type LoginResponse struct {
	Key string `json:"key"`
}

func (r *LoginResponse) Validate() error {
	if r.Key == "" {
		return errors.New("login response without key")
	}
	return nil
}

// RegistrationRequest is the POST /auth/registration/ body.
type RegistrationRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// RegistrationResponse carries the token issued on registration.
type RegistrationResponse struct {
	Token string `json:"token"`
}

func (r *RegistrationResponse) Validate() error {
	if r.Token == "" {
		return errors.New("registration response without token")
	}
	return nil
}
