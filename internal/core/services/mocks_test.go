package services

import (
	"context"
	"time"

	"edugate/internal/adapters/persistence/models"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByRole(ctx context.Context, role string) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *models.LoanApplication) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*models.LoanApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanApplication), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context) ([]*models.LoanApplication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanApplication), args.Error(1)
}

func (m *MockLoanRepository) ListPage(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.LoanApplication), args.Get(1).(int64), args.Error(2)
}

func (m *MockLoanRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.LoanApplication, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanApplication), args.Error(1)
}

func (m *MockLoanRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.LoanApplication, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoanApplication), args.Error(1)
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockPublisher is a mock implementation of EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

// MockSink is a mock implementation of TelemetrySink.
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Append(ctx context.Context, values map[string]interface{}) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
