package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid admin password")

// AdminAuth guards the admin surface with one shared password. Only the
// bcrypt hash is kept in memory.
type AdminAuth struct {
	hash []byte
}

func NewAdminAuth(password string, cost int) (*AdminAuth, error) {
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}
	return &AdminAuth{hash: h}, nil
}

func (a *AdminAuth) Login(password string) error {
	if password == "" || bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return ErrBadCreds
	}
	return nil
}
