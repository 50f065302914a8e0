package http

import (
	"genesis-lending/internal/adapter/middleware"
	"genesis-lending/internal/domain/user"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Base        *Handler
	Auth        *AuthHandler
	Loans       *LoanHandler
	Profile     *ProfileHandler
	Authn       echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/", r.Base.Root)
	e.GET("/health", r.Base.Health)

	auth := e.Group("/api/auth")
	auth.POST("/register", r.Auth.Register)
	auth.POST("/login", r.Auth.Login)

	borrower := middleware.RequireRole(user.RoleBorrower)
	lender := middleware.RequireRole(user.RoleLender)

	loans := e.Group("/api/loans", r.Authn, r.Idempotency)
	loans.POST("", r.Loans.CreateLoan, borrower)
	loans.GET("", r.Loans.ListPending, lender)
	loans.GET("/borrower", r.Loans.ListForBorrower, borrower)
	loans.GET("/lender", r.Loans.ListForLender, lender)
	loans.GET("/:id", r.Loans.GetLoan)
	loans.PUT("/:id/fund", r.Loans.FundLoan, lender)
	loans.PUT("/:id/repay", r.Loans.RepayLoan, borrower)

	profile := e.Group("/api/profile", r.Authn, r.Idempotency)
	profile.GET("", r.Profile.GetProfile)
	profile.PUT("/balance", r.Profile.Deposit)
	profile.PUT("/location", r.Profile.SetLocation)
	profile.GET("/filter-loans", r.Profile.FilterLoans)
}
