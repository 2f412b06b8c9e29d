package services

import (
	"context"
	"time"

	"edugate/internal/adapters/persistence/models"

	"github.com/sirupsen/logrus"
)

// Loan event names
const (
	EventLoanSubmitted     = "loan.submitted"
	EventLoanStatusChanged = "loan.status_changed"
	EventLoanReviewOverdue = "loan.review_overdue"
)

const publishTimeout = 5 * time.Second

// LoanEvent is the message published for every loan lifecycle event
type LoanEvent struct {
	Event          string    `json:"event"`
	LoanID         string    `json:"loan_id"`
	StudentID      *string   `json:"student_id,omitempty"`
	ApplicantName  string    `json:"applicant_name"`
	Amount         float64   `json:"amount"`
	RiskScore      int       `json:"risk_score"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	PendingHours   int       `json:"pending_hours,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NotificationService publishes loan events to the broker
type NotificationService struct {
	publisher EventPublisher
	enabled   bool
	log       *logrus.Logger
}

// NewNotificationService creates a new notification service.
// A nil publisher disables publishing.
func NewNotificationService(publisher EventPublisher, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		enabled:   publisher != nil,
		log:       log,
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s != nil && s.enabled
}

func (s *NotificationService) publish(ctx context.Context, event *LoanEvent) {
	if !s.IsEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishJSON(ctx, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":   event.Event,
			"loan_id": event.LoanID,
		}).Warn("failed to publish loan event")
	}
}

func newLoanEvent(name string, loan *models.LoanApplication) *LoanEvent {
	return &LoanEvent{
		Event:         name,
		LoanID:        loan.ID,
		StudentID:     loan.StudentID,
		ApplicantName: loan.ApplicantName,
		Amount:        loan.Amount,
		RiskScore:     loan.RiskScore,
		Status:        loan.Status,
		OccurredAt:    time.Now().UTC(),
	}
}

// NotifySubmitted publishes a loan.submitted event
func (s *NotificationService) NotifySubmitted(ctx context.Context, loan *models.LoanApplication) {
	s.publish(ctx, newLoanEvent(EventLoanSubmitted, loan))
}

// NotifyStatusChanged publishes a loan.status_changed event
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, loan *models.LoanApplication, previous string) {
	event := newLoanEvent(EventLoanStatusChanged, loan)
	event.PreviousStatus = previous
	s.publish(ctx, event)
}

// NotifyReviewOverdue publishes a loan.review_overdue event
func (s *NotificationService) NotifyReviewOverdue(ctx context.Context, loan *models.LoanApplication, pending time.Duration) {
	event := newLoanEvent(EventLoanReviewOverdue, loan)
	event.PendingHours = int(pending.Hours())
	s.publish(ctx, event)
}
