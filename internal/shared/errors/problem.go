// Package errors renders RFC 7807 problem documents for the retail HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions carries problem specific members such as the stock shortfall.
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy carrying instance.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with key set. The extension map is copied so
// templates stay untouched.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

const (
	TypeValidation        = "/problems/validation-error"
	TypeBadRequest        = "/problems/bad-request"
	TypeNotFound          = "/problems/not-found"
	TypeInsufficientStock = "/problems/insufficient-stock"
	TypeInvalidState      = "/problems/invalid-state"
	TypeUnauthorized      = "/problems/unauthorized"
	TypeForbidden         = "/problems/forbidden"
	TypeUnavailable       = "/problems/upstream-unavailable"
	TypeInternal          = "/problems/internal-error"
)

var (
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}
	// ErrInsufficientStock is a 400 because the request, not the server, is at fault.
	ErrInsufficientStock = ProblemDetail{
		Type:   TypeInsufficientStock,
		Title:  "Insufficient Stock",
		Status: http.StatusBadRequest,
	}
	ErrInvalidState = ProblemDetail{
		Type:   TypeInvalidState,
		Title:  "Invalid Order State",
		Status: http.StatusBadRequest,
	}
	ErrUnauthorized = ProblemDetail{
		Type:   TypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
	}
	ErrForbidden = ProblemDetail{
		Type:   TypeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
	}
	ErrUnavailable = ProblemDetail{
		Type:   TypeUnavailable,
		Title:  "Upstream Unavailable",
		Status: http.StatusBadGateway,
	}
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem reports field level validation failures.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

// NewNotFoundProblem reports a missing resource of resourceType.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// NewInsufficientStockProblem reports the shortfall of one product.
func NewInsufficientStockProblem(productID any, productName string, requested, available int) ProblemDetail {
	return ErrInsufficientStock.
		WithDetail(fmt.Sprintf("product %q has %d in stock, %d requested", productName, available, requested)).
		WithExtension("productId", productID).
		WithExtension("requested", requested).
		WithExtension("available", available)
}
