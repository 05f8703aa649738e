package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps failed logins and unknown or expired tokens.
	ErrAuthentication = errors.New("authentication failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidUserID) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrInvalidCredentials) || errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
