// Package access holds the role and ownership rules for loans. Nothing here
// touches the store or the transport; callers resolve records first.
package access

import (
	"errors"

	"genesis-lending/internal/domain/loan"
	"genesis-lending/internal/domain/user"
)

var (
	// ErrForbidden: the actor has the wrong role for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized: the actor has no relationship to the loan.
	ErrUnauthorized = errors.New("Not authorized to access this loan")
)

// Actor is the authenticated caller.
type Actor struct {
	ID     uint64
	UserID string
	Role   user.Role
}

func ActorOf(u *user.User) Actor { return Actor{ID: u.ID, UserID: u.UserID, Role: u.Role} }

// Capabilities is what an actor may do with one loan right now.
type Capabilities struct {
	CanRead  bool `json:"canRead"`
	CanFund  bool `json:"canFund"`
	CanRepay bool `json:"canRepay"`
}

// RoleError is an ErrForbidden naming the role that was required.
type RoleError struct{ Required user.Role }

func (e *RoleError) Error() string        { return "Access denied. " + string(e.Required) + " role required" }
func (e *RoleError) Is(target error) bool { return target == ErrForbidden }

func RequireRole(required, actual user.Role) error {
	if required != actual {
		return &RoleError{Required: required}
	}
	return nil
}

// CanAccessLoan passes for the loan's borrower, and for lenders while the loan
// is pending or when they are its assigned lender.
func CanAccessLoan(a Actor, l *loan.Loan) error {
	if l.IsBorrower(a.ID) {
		return nil
	}
	if a.Role == user.RoleLender && (l.Status == loan.StatusPending || l.IsLender(a.ID)) {
		return nil
	}
	return ErrUnauthorized
}

func CapabilitiesFor(a Actor, l *loan.Loan) Capabilities {
	return Capabilities{
		CanRead:  CanAccessLoan(a, l) == nil,
		CanFund:  a.Role == user.RoleLender && l.Status == loan.StatusPending,
		CanRepay: a.Role == user.RoleBorrower && l.IsBorrower(a.ID) && l.Status == loan.StatusFunded,
	}
}
