package http

import (
	"net/http"

	"genesis-lending/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *account.Usecase }

func NewAuthHandler(uc *account.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=borrower lender"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Register(c.Request().Context(), account.RegisterInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.Request().Context(), account.LoginInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
