package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidCustomerID = errors.New("customer id is required")
	ErrEmptyCustomerName = errors.New("customer first and last name are required")
	ErrInvalidEmail      = errors.New("customer email must contain '@'")
)

// Customer places orders. The order engine only reads it.
type Customer struct {
	ID         uuid.UUID
	ExternalID int
	FirstName  string
	LastName   string
	Email      string
}

// NewCustomer validates and constructs a customer.
func NewCustomer(id uuid.UUID, firstName, lastName, email string) (*Customer, error) {
	customer := &Customer{
		ID:        id,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.ToLower(strings.TrimSpace(email)),
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	return customer, nil
}

// Validate enforces customer invariants.
func (c *Customer) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidCustomerID
	}
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return ErrEmptyCustomerName
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// FullName joins first and last name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
