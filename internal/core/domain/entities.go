package domain

import "strings"

// Role represents user role in the system
type Role string

const (
	RoleStudent     Role = "student"
	RoleDistributor Role = "distributor"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleDistributor
}

// LoanStatus is the review state of a loan application
type LoanStatus string

const (
	StatusUnderReview LoanStatus = "under_review"
	StatusApproved    LoanStatus = "approved"
	StatusCancelled   LoanStatus = "cancelled"
)

// allowed predecessor states per target state
var transitions = map[LoanStatus][]LoanStatus{
	StatusApproved:  {StatusUnderReview},
	StatusCancelled: {StatusUnderReview},
}

// ParseLoanStatus normalizes s and checks it against the known statuses
func ParseLoanStatus(s string) (LoanStatus, bool) {
	status := LoanStatus(strings.ToLower(strings.TrimSpace(s)))
	return status, status.Valid()
}

// Valid reports whether s is one of the known statuses
func (s LoanStatus) Valid() bool {
	switch s {
	case StatusUnderReview, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition leaves s
func (s LoanStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusCancelled
}

// CanTransitionTo reports whether a reviewer may move an application from s to next
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, from := range transitions[next] {
		if from == s {
			return true
		}
	}
	return false
}

// Caller is the authenticated identity performing an operation
type Caller struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}
