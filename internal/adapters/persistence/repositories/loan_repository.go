package repositories

import (
	"context"
	"time"

	"edugate/internal/adapters/persistence/models"
	"edugate/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan application repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create inserts a new loan application
func (r *loanRepository) Create(ctx context.Context, loan *models.LoanApplication) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan application by ID
func (r *loanRepository) GetByID(ctx context.Context, id string) (*models.LoanApplication, error) {
	var loan models.LoanApplication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// List lists all loan applications, newest first
func (r *loanRepository) List(ctx context.Context) ([]*models.LoanApplication, error) {
	var loans []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListPage lists one page of applications, newest first, with the total row count
func (r *loanRepository) ListPage(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	var (
		loans []*models.LoanApplication
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&models.LoanApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error
	return loans, total, err
}

// ListByStudent lists the applications submitted by one student, newest first
func (r *loanRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.LoanApplication, error) {
	var loans []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListPendingOlderThan lists applications still under review that were created before cutoff
func (r *loanRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.LoanApplication, error) {
	var loans []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusUnderReview)).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}

// UpdateStatus updates the status of a single row
func (r *loanRepository) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Where("id = ?", id)
	if from != "" {
		q = q.Where("status = ?", from)
	}

	res := q.Updates(map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
