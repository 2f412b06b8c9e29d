package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"edugate/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Disabled(t *testing.T) {
	log, _ := newTestLogger()
	svc := NewNotificationService(nil, log)

	assert.False(t, svc.IsEnabled())
	svc.NotifySubmitted(context.Background(), &models.LoanApplication{ID: "loan-1"})

	var nilSvc *NotificationService
	assert.False(t, nilSvc.IsEnabled())
	nilSvc.NotifyReviewOverdue(context.Background(), &models.LoanApplication{ID: "loan-1"}, time.Hour)
}

func TestNotificationService_PublishFailureIsLogged(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishJSON", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	log, hook := newTestLogger()
	svc := NewNotificationService(pub, log)
	require.True(t, svc.IsEnabled())

	studentID := "stu-1"
	svc.NotifyStatusChanged(context.Background(), &models.LoanApplication{
		ID:        "loan-1",
		StudentID: &studentID,
		Status:    "cancelled",
	}, "under_review")

	pub.AssertNumberOfCalls(t, "PublishJSON", 1)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "loan-1", hook.LastEntry().Data["loan_id"])
	assert.Equal(t, EventLoanStatusChanged, hook.LastEntry().Data["event"])
}

func TestNotificationService_PublishesDeadlineBoundContext(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishJSON", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok && ctx.Err() == nil
	}), mock.Anything).Return(nil)

	log, _ := newTestLogger()
	svc := NewNotificationService(pub, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.NotifySubmitted(ctx, &models.LoanApplication{ID: "loan-1"})

	pub.AssertExpectations(t)
}
