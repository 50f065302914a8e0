package http

import (
	"net/http"

	"genesis-lending/internal/adapter/middleware"
	"genesis-lending/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Amount        decimal.Decimal `json:"amount" validate:"gt=0,cents"`
	Purpose       string          `json:"purpose" validate:"required"`
	InterestRate  decimal.Decimal `json:"interestRate" validate:"gte=0,lte=9999.99"`
	Term          int             `json:"term" validate:"gte=1"`
	HasCollateral bool            `json:"hasCollateral"`
	PaymentMode   string          `json:"paymentMode" validate:"omitempty,oneof=online cash cheque"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), actor, loan.CreateLoanInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListPending(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListPending(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListForBorrower(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListForBorrower(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListForLender(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListForLender(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.uc.Fund(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Repay(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
