package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"edugate/internal/adapters/persistence/models"
	"edugate/internal/adapters/persistence/repositories"
	"edugate/internal/core/domain"
	"edugate/internal/pkg/validation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LoanService owns the loan application lifecycle
type LoanService struct {
	loanRepo   repositories.LoanRepository
	notifier   *NotificationService
	validator  *validation.Validator
	permissive bool
	log        *logrus.Logger
}

// LoanServiceOption configures a LoanService
type LoanServiceOption func(*LoanService)

// WithPermissiveTransitions lets a reviewer overwrite the status of any
// application, including ones already approved or cancelled.
func WithPermissiveTransitions(enabled bool) LoanServiceOption {
	return func(s *LoanService) {
		s.permissive = enabled
	}
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	notifier *NotificationService,
	log *logrus.Logger,
	opts ...LoanServiceOption,
) *LoanService {
	s := &LoanService{
		loanRepo:  loanRepo,
		notifier:  notifier,
		validator: validation.New(),
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitLoanInput represents the applicant fields of a new application
type SubmitLoanInput struct {
	ApplicantName    string   `json:"applicant_name" validate:"required,max=150"`
	Email            string   `json:"email" validate:"omitempty,max=150"`
	Phone            *string  `json:"phone" validate:"omitempty,max=30"`
	Amount           float64  `json:"amount" validate:"gt=0,lte=9999999999999.99"`
	Duration         *int     `json:"duration"`
	Purpose          *string  `json:"purpose"`
	FamilyIncome     *float64 `json:"family_income" validate:"omitempty,gte=0,lte=9999999999999.99"`
	CreditScore      *int     `json:"credit_score"`
	PreviousDefaults bool     `json:"previous_defaults"`
	Aadhar           *string  `json:"aadhar" validate:"omitempty,max=20"`
	DOB              *string  `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}

func toCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func requireRole(caller *domain.Caller, role domain.Role) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if caller.Role != role {
		return fmt.Errorf("%w: %s role required", domain.ErrForbidden, role)
	}
	return nil
}

// Submit scores and stores a new application for a student caller
func (s *LoanService) Submit(ctx context.Context, caller *domain.Caller, input *SubmitLoanInput) (*models.LoanApplication, error) {
	if err := requireRole(caller, domain.RoleStudent); err != nil {
		return nil, err
	}

	input.ApplicantName = strings.TrimSpace(input.ApplicantName)
	input.Email = strings.TrimSpace(input.Email)
	// amounts are stored as DECIMAL(15,2); score and validate what will be stored
	input.Amount = toCents(input.Amount)
	if input.FamilyIncome != nil {
		income := toCents(*input.FamilyIncome)
		input.FamilyIncome = &income
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	email := input.Email
	if email == "" {
		email = caller.Email
	}
	studentID := caller.UserID

	loan := &models.LoanApplication{
		StudentID:        &studentID,
		ApplicantName:    input.ApplicantName,
		Email:            email,
		Phone:            input.Phone,
		Amount:           input.Amount,
		Duration:         input.Duration,
		Purpose:          input.Purpose,
		FamilyIncome:     input.FamilyIncome,
		CreditScore:      input.CreditScore,
		PreviousDefaults: input.PreviousDefaults,
		Aadhar:           input.Aadhar,
		DOB:              input.DOB,
		RiskScore:        RiskScore(input.Amount, input.CreditScore, input.PreviousDefaults),
		Status:           string(domain.StatusUnderReview),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":    loan.ID,
		"user_id":    caller.UserID,
		"risk_score": loan.RiskScore,
	}).Info("loan application submitted")

	s.notifier.NotifySubmitted(ctx, loan)

	return loan, nil
}

// List returns every application, newest first
func (s *LoanService) List(ctx context.Context, caller *domain.Caller) ([]*models.LoanApplication, error) {
	if err := requireRole(caller, domain.RoleDistributor); err != nil {
		return nil, err
	}
	return s.loanRepo.List(ctx)
}

// ListPage returns one page of applications, newest first, and the total count
func (s *LoanService) ListPage(ctx context.Context, caller *domain.Caller, offset, limit int) ([]*models.LoanApplication, int64, error) {
	if err := requireRole(caller, domain.RoleDistributor); err != nil {
		return nil, 0, err
	}
	return s.loanRepo.ListPage(ctx, offset, limit)
}

// ListMine returns the caller's own applications, newest first
func (s *LoanService) ListMine(ctx context.Context, caller *domain.Caller) ([]*models.LoanApplication, error) {
	if err := requireRole(caller, domain.RoleStudent); err != nil {
		return nil, err
	}
	return s.loanRepo.ListByStudent(ctx, caller.UserID)
}

// Get returns a single application
func (s *LoanService) Get(ctx context.Context, caller *domain.Caller, id string) (*models.LoanApplication, error) {
	if err := requireRole(caller, domain.RoleDistributor); err != nil {
		return nil, err
	}
	return s.getByID(ctx, id)
}

func (s *LoanService) getByID(ctx context.Context, id string) (*models.LoanApplication, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: loan application %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return loan, nil
}

// SetStatus moves an application to a new review status
func (s *LoanService) SetStatus(ctx context.Context, caller *domain.Caller, id, rawStatus string) (*models.LoanApplication, error) {
	if err := requireRole(caller, domain.RoleDistributor); err != nil {
		return nil, err
	}

	next, ok := domain.ParseLoanStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: status must be one of under_review, approved, cancelled", domain.ErrValidation)
	}

	current, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := domain.LoanStatus(current.Status)

	// guarded updates only apply while the row still holds the status we read
	from := string(previous)
	if s.permissive {
		from = ""
	} else if !previous.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, previous, next)
	}

	updated, err := s.loanRepo.UpdateStatus(ctx, id, from, string(next))
	if err != nil {
		return nil, err
	}
	if !updated {
		if s.permissive {
			return nil, fmt.Errorf("%w: loan application %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %s changed concurrently", domain.ErrInvalidTransition, id)
	}

	loan, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"loan_id": loan.ID,
		"user_id": caller.UserID,
		"from":    previous,
		"status":  loan.Status,
	}).Info("loan application status changed")

	s.notifier.NotifyStatusChanged(ctx, loan, string(previous))

	return loan, nil
}
