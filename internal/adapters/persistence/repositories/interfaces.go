package repositories

import (
	"context"
	"time"

	"edugate/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRole(ctx context.Context, role string) (bool, error)
}

// LoanRepository defines loan application repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.LoanApplication) error
	GetByID(ctx context.Context, id string) (*models.LoanApplication, error)
	List(ctx context.Context) ([]*models.LoanApplication, error)
	ListPage(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.LoanApplication, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.LoanApplication, error)
	// UpdateStatus sets status to `to`. When from is non-empty the row is only
	// updated if its current status equals from. Reports whether a row changed.
	UpdateStatus(ctx context.Context, id, from, to string) (bool, error)
}
