package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDashboard(t *testing.T) {
	coordinator, manager, other := int64(3), int64(4), int64(9)
	users := []*User{
		{ID: 1, Role: RoleHR},
		{ID: 2, Role: RoleLecturer},
		{ID: 3, Role: RoleCoordinator},
		{ID: 4, Role: RoleManager},
		{ID: 5, Role: RoleLecturer},
	}
	claims := []*Claim{
		{ID: 101, LecturerID: 2, Status: StatusPendingVerification},
		{ID: 102, LecturerID: 2, Status: StatusVerified, VerifiedBy: &coordinator},
		{ID: 103, LecturerID: 5, Status: StatusVerified, VerifiedBy: &other},
		{ID: 104, LecturerID: 5, Status: StatusApproved, VerifiedBy: &coordinator, ApprovedBy: &manager},
		{ID: 105, LecturerID: 2, Status: StatusRejected, VerifiedBy: &coordinator},
	}

	t.Run("lecturer", func(t *testing.T) {
		d := NewDashboard(users[1], users, claims)
		assert.Equal(t, 3, d.TotalClaims)
		assert.Nil(t, d.PendingVerification)
		assert.Nil(t, d.UserCount)
	})

	t.Run("coordinator", func(t *testing.T) {
		d := NewDashboard(users[2], users, claims)
		assert.Equal(t, 5, d.TotalClaims)
		require.NotNil(t, d.PendingVerification)
		assert.Equal(t, 1, *d.PendingVerification)
		require.NotNil(t, d.VerifiedByMe)
		assert.Equal(t, 1, *d.VerifiedByMe)
		assert.Nil(t, d.PendingApproval)
	})

	t.Run("manager", func(t *testing.T) {
		d := NewDashboard(users[3], users, claims)
		require.NotNil(t, d.PendingApproval)
		assert.Equal(t, 2, *d.PendingApproval)
		require.NotNil(t, d.ApprovedByMe)
		assert.Equal(t, 1, *d.ApprovedByMe)
		assert.Nil(t, d.VerifiedByMe)
	})

	t.Run("hr", func(t *testing.T) {
		d := NewDashboard(users[0], users, claims)
		assert.Equal(t, 5, d.TotalClaims)
		require.NotNil(t, d.UserCount)
		assert.Equal(t, 5, *d.UserCount)
		require.NotNil(t, d.LecturerCount)
		assert.Equal(t, 2, *d.LecturerCount)
	})
}
