package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin checks login attempts against the single configured admin account.
type Admin struct {
	username     string
	passwordHash []byte
}

func NewAdmin(username, passwordHash string) *Admin {
	return &Admin{username: username, passwordHash: []byte(passwordHash)}
}

func (a *Admin) Verify(username, password string) error {
	if len(a.passwordHash) == 0 || a.username == "" {
		return ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for auth.admin_password_hash.
func HashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errors.New("password too short")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
