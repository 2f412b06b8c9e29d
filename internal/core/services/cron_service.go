package services

import (
	"context"
	"time"

	"edugate/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService runs scheduled background jobs
type CronService struct {
	cron     *cron.Cron
	loanRepo repositories.LoanRepository
	notifier *NotificationService
	spec     string
	sla      time.Duration
	now      func() time.Time
	log      *logrus.Logger
}

// NewCronService creates a new cron service. spec is a standard five-field
// cron expression; sla is how long an application may wait for review.
func NewCronService(
	loanRepo repositories.LoanRepository,
	notifier *NotificationService,
	spec string,
	sla time.Duration,
	log *logrus.Logger,
) *CronService {
	return &CronService{
		cron:     cron.New(),
		loanRepo: loanRepo,
		notifier: notifier,
		spec:     spec,
		sla:      sla,
		now:      time.Now,
		log:      log,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.RemindOverdueReviews(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.log.WithField("schedule", s.spec).Info("cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron service stopped")
}

// RemindOverdueReviews publishes a reminder for every application still under
// review past the SLA and returns how many were found.
func (s *CronService) RemindOverdueReviews(ctx context.Context) int {
	now := s.now()
	loans, err := s.loanRepo.ListPendingOlderThan(ctx, now.Add(-s.sla))
	if err != nil {
		s.log.WithError(err).Error("review reminder query failed")
		return 0
	}

	for _, loan := range loans {
		pending := now.Sub(loan.CreatedAt)
		s.log.WithFields(logrus.Fields{
			"loan_id":       loan.ID,
			"pending_hours": int(pending.Hours()),
		}).Warn("loan application awaiting review")
		s.notifier.NotifyReviewOverdue(ctx, loan, pending)
	}

	if len(loans) > 0 {
		s.log.WithField("count", len(loans)).Info("review reminders sent")
	}
	return len(loans)
}
