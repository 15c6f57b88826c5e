package domain

// Dashboard holds the counters shown on a user's landing page. Counters that
// do not apply to the viewer's role are nil.
type Dashboard struct {
	Role                Role `json:"role"`
	TotalClaims         int  `json:"totalClaims"`
	PendingVerification *int `json:"pendingVerification,omitempty"`
	VerifiedByMe        *int `json:"verifiedByMe,omitempty"`
	PendingApproval     *int `json:"pendingApproval,omitempty"`
	ApprovedByMe        *int `json:"approvedByMe,omitempty"`
	UserCount           *int `json:"userCount,omitempty"`
	LecturerCount       *int `json:"lecturerCount,omitempty"`
}

// NewDashboard counts claims and users from the viewer's point of view. A
// lecturer only counts their own claims.
func NewDashboard(viewer *User, users []*User, claims []*Claim) *Dashboard {
	d := &Dashboard{Role: viewer.Role}

	count := func(match func(c *Claim) bool) *int {
		n := 0
		for _, c := range claims {
			if match(c) {
				n++
			}
		}
		return &n
	}
	decidedBy := func(by *int64) bool { return by != nil && *by == viewer.ID }

	switch viewer.Role {
	case RoleLecturer:
		d.TotalClaims = *count(func(c *Claim) bool { return c.LecturerID == viewer.ID })
		return d
	case RoleCoordinator:
		d.PendingVerification = count(func(c *Claim) bool { return c.Status == StatusPendingVerification })
		d.VerifiedByMe = count(func(c *Claim) bool { return c.Status == StatusVerified && decidedBy(c.VerifiedBy) })
	case RoleManager:
		d.PendingApproval = count(func(c *Claim) bool { return c.Status == StatusVerified })
		d.ApprovedByMe = count(func(c *Claim) bool { return c.Status == StatusApproved && decidedBy(c.ApprovedBy) })
	case RoleHR:
		lecturers := 0
		for _, u := range users {
			if u.Role == RoleLecturer {
				lecturers++
			}
		}
		userCount := len(users)
		d.UserCount = &userCount
		d.LecturerCount = &lecturers
	}

	d.TotalClaims = len(claims)
	return d
}
