package repository

import (
	"context"
	"testing"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLecturer(email string) *domain.User {
	return &domain.User{Name: "John", Surname: "Lecturer", Email: email, HourlyRate: 350, Role: domain.RoleLecturer}
}

func TestMemoryRepository_UserIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for i, email := range []string{"a@u.com", "b@u.com", "c@u.com"} {
		u := newLecturer(email)
		require.NoError(t, repo.CreateUser(ctx, u))
		assert.Equal(t, int64(i+1), u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	}
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.CreateUser(ctx, newLecturer("a@u.com")))
	assert.ErrorIs(t, repo.CreateUser(ctx, newLecturer("a@u.com")), domain.ErrDuplicateEmail)

	// exact match only
	require.NoError(t, repo.CreateUser(ctx, newLecturer("A@u.com")))

	other := newLecturer("b@u.com")
	require.NoError(t, repo.CreateUser(ctx, other))
	other.Email = "a@u.com"
	assert.ErrorIs(t, repo.UpdateUser(ctx, other), domain.ErrDuplicateEmail)

	// keeping one's own email is not a conflict
	self, err := repo.GetUserByEmail(ctx, "a@u.com")
	require.NoError(t, err)
	self.Name = "Jane"
	require.NoError(t, repo.UpdateUser(ctx, self))
}

func TestMemoryRepository_UserLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	u := newLecturer("a@u.com")
	require.NoError(t, repo.CreateUser(ctx, u))

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@u.com", got.Email)

	_, err = repo.GetUserByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetUserByEmail(ctx, "missing@u.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.UpdateUser(ctx, &domain.User{ID: 42, Email: "x@u.com"}), domain.ErrNotFound)

	got.HourlyRate = 500
	all, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 350.0, all[0].HourlyRate, "returned users must not alias stored ones")
}

func TestMemoryRepository_ClaimIDsStartAt101(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var last int64
	for i := 0; i < 5; i++ {
		c := &domain.Claim{LecturerID: 2, TotalHours: 10, Month: "2025-11", Status: domain.StatusPendingVerification}
		require.NoError(t, repo.CreateClaim(ctx, c))
		if i == 0 {
			assert.Equal(t, FirstClaimID, c.ID)
		} else {
			assert.Greater(t, c.ID, last)
		}
		last = c.ID
	}
}

func TestMemoryRepository_ClaimQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, lecturer := range []int64{2, 5, 2} {
		require.NoError(t, repo.CreateClaim(ctx, &domain.Claim{LecturerID: lecturer, Month: "2025-11"}))
	}

	all, err := repo.GetAllClaims(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{101, 102, 103}, []int64{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.GetClaimsByLecturerID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(101), mine[0].ID)
	assert.Equal(t, int64(103), mine[1].ID)

	none, err := repo.GetClaimsByLecturerID(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.GetClaimByID(ctx, 500)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryRepository_UpdateClaimOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	c := &domain.Claim{LecturerID: 2, Notes: "first", Month: "2025-11", Document: &domain.DocumentRef{Path: "k", OriginalName: "a.pdf"}}
	require.NoError(t, repo.CreateClaim(ctx, c))

	by := int64(3)
	at := time.Now()
	replacement := &domain.Claim{ID: c.ID, LecturerID: 2, Month: "2025-11", Status: domain.StatusVerified, VerifiedBy: &by, VerifiedAt: &at}
	require.NoError(t, repo.UpdateClaim(ctx, replacement))

	got, err := repo.GetClaimByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, got.Status)
	assert.Empty(t, got.Notes, "blank fields overwrite stored ones")
	assert.Nil(t, got.Document)
	assert.Equal(t, int64(3), *got.VerifiedBy)
}

func TestMemoryRepository_UpdateClaimKeepsLecturerAndSubmittedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	submitted := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	c := &domain.Claim{LecturerID: 2, Month: "2025-11", SubmittedAt: submitted}
	require.NoError(t, repo.CreateClaim(ctx, c))

	require.NoError(t, repo.UpdateClaim(ctx, &domain.Claim{ID: c.ID, LecturerID: 7, Status: domain.StatusVerified}))

	got, err := repo.GetClaimByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.LecturerID)
	assert.True(t, submitted.Equal(got.SubmittedAt))
	assert.Equal(t, domain.StatusVerified, got.Status)

	byLecturer, err := repo.GetClaimsByLecturerID(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, byLecturer)
}

func TestMemoryRepository_UpdateMissingClaim(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.CreateClaim(ctx, &domain.Claim{LecturerID: 2}))

	err := repo.UpdateClaim(ctx, &domain.Claim{ID: 999, Status: domain.StatusApproved})
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.GetAllClaims(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Status)
}

func TestMemoryRepository_ClaimIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	c := &domain.Claim{LecturerID: 2, Status: domain.StatusPendingVerification}
	require.NoError(t, repo.CreateClaim(ctx, c))
	c.Status = domain.StatusApproved

	got, err := repo.GetClaimByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingVerification, got.Status)
}
