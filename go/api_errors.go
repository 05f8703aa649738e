package retailserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/retail-inventory-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	ordersapp "github.com/Apurer/retail-inventory-api/internal/domains/orders/application"
	usersapp "github.com/Apurer/retail-inventory-api/internal/domains/users/application"
	apierrors "github.com/Apurer/retail-inventory-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", ordersProblem, catalogProblem, usersProblem)

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if len(c.Errors) == 0 {
		_ = c.Error(err)
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

func ordersProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		var shortfall *catalogdomain.InsufficientStockError
		if errors.As(err, &shortfall) {
			return apierrors.NewInsufficientStockProblem(shortfall.ProductID.String(), shortfall.ProductName, shortfall.Requested, shortfall.Available), true
		}
		return apierrors.ErrInsufficientStock.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidState):
		return apierrors.ErrInvalidState.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrImportUnavailable):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// Authentication failures never reveal which part of the credentials was wrong.
func usersProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("invalid credentials or token"), true
	case errors.Is(err, usersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
