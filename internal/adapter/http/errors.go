package http

import (
	"errors"
	"net/http"

	"genesis-lending/internal/adapter/middleware"
	"genesis-lending/internal/domain/access"
	"genesis-lending/internal/domain/apperr"
	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const serverError = "Server error"

// respondError writes the client-facing form of err. Anything unrecognised is
// logged and hidden behind a 500.
func respondError(c echo.Context, err error) error {
	var (
		ve   *apperr.ValidationError
		vErr validator.ValidationErrors
		ife  *loan.InsufficientFundsError
	)
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: ToFieldErrors(vErr)})
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   ve.Message,
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case errors.As(err, &ife):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ife.Error(), Required: &ife.Required, Available: &ife.Available})
	case errors.Is(err, loan.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, middleware.ErrUnauthenticated), errors.Is(err, access.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, access.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Loan not found"})
	case errors.Is(err, user.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: serverError})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}
