package routes

import (
	"context"
	"sort"
	"sync"
	"time"

	"edugate/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memoryUsers is an in-memory UserRepository.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*models.User{}}
}

func (m *memoryUsers) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) GetByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.Role == role {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) ExistsByRole(ctx context.Context, role string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// memoryLoans is an in-memory LoanRepository.
type memoryLoans struct {
	mu    sync.Mutex
	seq   int
	loans map[string]*models.LoanApplication
	order map[string]int
}

func newMemoryLoans() *memoryLoans {
	return &memoryLoans{loans: map[string]*models.LoanApplication{}, order: map[string]int{}}
}

func (m *memoryLoans) Create(ctx context.Context, loan *models.LoanApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	loan.ID = uuid.NewString()
	loan.CreatedAt = time.Now()
	loan.UpdatedAt = loan.CreatedAt
	copied := *loan
	m.loans[loan.ID] = &copied
	m.seq++
	m.order[loan.ID] = m.seq
	return nil
}

func (m *memoryLoans) GetByID(ctx context.Context, id string) (*models.LoanApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loans[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryLoans) sorted(keep func(*models.LoanApplication) bool) []*models.LoanApplication {
	out := []*models.LoanApplication{}
	for _, l := range m.loans {
		if keep(l) {
			copied := *l
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] > m.order[out[j].ID] })
	return out
}

func (m *memoryLoans) List(ctx context.Context) ([]*models.LoanApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(*models.LoanApplication) bool { return true }), nil
}

func (m *memoryLoans) ListPage(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(func(*models.LoanApplication) bool { return true })
	total := int64(len(all))
	if offset >= len(all) {
		return []*models.LoanApplication{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memoryLoans) ListByStudent(ctx context.Context, studentID string) ([]*models.LoanApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(l *models.LoanApplication) bool {
		return l.StudentID != nil && *l.StudentID == studentID
	}), nil
}

func (m *memoryLoans) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.LoanApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(l *models.LoanApplication) bool {
		return l.Status == "under_review" && l.CreatedAt.Before(cutoff)
	}), nil
}

func (m *memoryLoans) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loans[id]
	if !ok || (from != "" && l.Status != from) {
		return false, nil
	}
	l.Status = to
	l.UpdatedAt = time.Now()
	return true, nil
}
