package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	FullName     string    `gorm:"size:150;not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;size:150;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	Photo        *string   `gorm:"size:16777216" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	HasPhoto  bool      `json:"has_photo"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		HasPhoto:  u.Photo != nil && *u.Photo != "",
		CreatedAt: u.CreatedAt,
	}
}

// LoanApplication represents loan_applications table
type LoanApplication struct {
	ID               string    `gorm:"type:char(36);primaryKey" json:"id"`
	StudentID        *string   `gorm:"type:char(36);index" json:"student_id"`
	ApplicantName    string    `gorm:"size:150;not null" json:"applicant_name"`
	Email            string    `gorm:"size:150" json:"email"`
	Phone            *string   `gorm:"size:30" json:"phone"`
	Amount           float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Duration         *int      `json:"duration"`
	Purpose          *string   `gorm:"type:text" json:"purpose"`
	FamilyIncome     *float64  `gorm:"type:decimal(15,2)" json:"family_income"`
	CreditScore      *int      `json:"credit_score"`
	PreviousDefaults bool      `gorm:"not null;default:false" json:"previous_defaults"`
	Aadhar           *string   `gorm:"size:20" json:"aadhar,omitempty"`
	DOB              *string   `gorm:"column:dob;size:10" json:"dob,omitempty"`
	RiskScore        int       `gorm:"not null" json:"risk_score"`
	Status           string    `gorm:"size:20;not null;index" json:"status"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}

// BeforeCreate assigns a UUID when none is set
func (l *LoanApplication) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&LoanApplication{},
	)
}
