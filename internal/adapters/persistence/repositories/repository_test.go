package repositories

import (
	"context"
	"testing"
	"time"

	"edugate/internal/adapters/persistence/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestLoanRepository_CreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectExec("INSERT INTO `loan_applications`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	loan := &models.LoanApplication{
		ApplicantName: "Rohit Verma",
		Amount:        150000,
		RiskScore:     95,
		Status:        "under_review",
	}
	require.NoError(t, repo.Create(context.Background(), loan))
	assert.Len(t, loan.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `loan_applications` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_ListPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `loan_applications`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM `loan_applications` ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("loan-1", "under_review"))

	loans, total, err := repo.ListPage(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, loans, 1)
	assert.Equal(t, "loan-1", loans[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_ListByStudent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "applicant_name", "amount", "risk_score", "status", "created_at"}).
		AddRow("loan-2", "Aisha Khan", 60000.0, 40, "approved", now).
		AddRow("loan-1", "Aisha Khan", 40000.0, 10, "under_review", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT \\* FROM `loan_applications` WHERE student_id = \\? ORDER BY created_at DESC").
		WithArgs("stu-1").
		WillReturnRows(rows)

	loans, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "loan-2", loans[0].ID)
	assert.Equal(t, 40, loans[0].RiskScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_UpdateStatusGuarded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectExec("UPDATE `loan_applications` SET .* WHERE id = \\? AND status = \\?").
		WithArgs("approved", sqlmock.AnyArg(), "loan-1", "under_review").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(context.Background(), "loan-1", "under_review", "approved")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_UpdateStatusLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectExec("UPDATE `loan_applications` SET .* WHERE id = \\? AND status = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateStatus(context.Background(), "loan-1", "under_review", "cancelled")
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailAndRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role"}).
		AddRow("u-1", "Meera Patel", "meera@example.com", "hash", "student")

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\? AND role = \\?").
		WillReturnRows(rows)

	user, err := repo.GetByEmailAndRole(context.Background(), "meera@example.com", "student")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?").
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
