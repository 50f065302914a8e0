package http

import (
	"net/http"

	"genesis-lending/internal/adapter/middleware"
	"genesis-lending/internal/domain/apperr"
	"genesis-lending/internal/usecase/loan"
	"genesis-lending/internal/usecase/profile"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProfileHandler struct {
	profiles *profile.Usecase
	loans    *loan.Usecase
}

func NewProfileHandler(p *profile.Usecase, l *loan.Usecase) *ProfileHandler {
	return &ProfileHandler{profiles: p, loans: l}
}

type depositReq struct {
	Amount decimal.Decimal `json:"amount"`
}

type locationReq struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.profiles.Get(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) Deposit(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Invalid("amount", "Please provide a valid amount"))
	}
	out, err := h.profiles.Deposit(c.Request().Context(), actor, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) SetLocation(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	out, err := h.profiles.SetLocation(c.Request().Context(), actor, req.City, req.Country)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) FilterLoans(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.loans.Filter(c.Request().Context(), actor, loan.FilterInput{
		InterestRate:  c.QueryParam("interestRate"),
		HasCollateral: c.QueryParam("hasCollateral"),
		PaymentMode:   c.QueryParam("paymentMode"),
		Location:      c.QueryParam("location"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
