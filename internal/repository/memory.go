package repository

import (
	"context"
	"sync"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
)

const FirstClaimID int64 = 101

// MemoryRepository keeps users and claims in process memory. Records are
// copied on the way in and out so callers never share stored state.
type MemoryRepository struct {
	mu          sync.RWMutex
	users       []*domain.User
	claims      []*domain.Claim
	nextClaimID int64
	now         func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:       make([]*domain.User, 0),
		claims:      make([]*domain.Claim, 0),
		nextClaimID: FirstClaimID,
		now:         time.Now,
	}
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func (r *MemoryRepository) findUser(id int64) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) emailTaken(email string, exceptID int64) bool {
	for _, u := range r.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, 0) {
		return domain.ErrDuplicateEmail
	}

	var maxID int64
	for _, u := range r.users {
		maxID = max(maxID, u.ID)
	}
	user.ID = maxID + 1
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}

	r.users = append(r.users, copyUser(user))
	return nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.findUser(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return copyUser(r.users[i]), nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) GetAllUsers(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

func (r *MemoryRepository) UpdateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findUser(user.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return domain.ErrDuplicateEmail
	}

	updated := copyUser(user)
	updated.CreatedAt = r.users[i].CreatedAt
	r.users[i] = updated
	return nil
}

func (r *MemoryRepository) CreateClaim(_ context.Context, claim *domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	claim.ID = r.nextClaimID
	r.nextClaimID++

	r.claims = append(r.claims, claim.Clone())
	return nil
}

func (r *MemoryRepository) GetClaimByID(_ context.Context, id int64) (*domain.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.claims {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) GetAllClaims(_ context.Context) ([]*domain.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	claims := make([]*domain.Claim, 0, len(r.claims))
	for _, c := range r.claims {
		claims = append(claims, c.Clone())
	}
	return claims, nil
}

func (r *MemoryRepository) GetClaimsByLecturerID(_ context.Context, lecturerID int64) ([]*domain.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	claims := make([]*domain.Claim, 0)
	for _, c := range r.claims {
		if c.LecturerID == lecturerID {
			claims = append(claims, c.Clone())
		}
	}
	return claims, nil
}

// UpdateClaim overwrites the stored claim with the same id. The lecturer and
// submission time are fixed at creation and kept from the stored record.
func (r *MemoryRepository) UpdateClaim(_ context.Context, claim *domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.claims {
		if c.ID == claim.ID {
			updated := claim.Clone()
			updated.LecturerID = c.LecturerID
			updated.SubmittedAt = c.SubmittedAt
			r.claims[i] = updated
			return nil
		}
	}
	return domain.ErrNotFound
}
