package service

import (
	"context"

	"github.com/prog6212/cmcs/backend/internal/domain"
)

func (s *Service) GetClaim(ctx context.Context, id int64) (*domain.Claim, error) {
	return s.repo.GetClaimByID(ctx, id)
}

func (s *Service) AllClaims(ctx context.Context) ([]*domain.Claim, error) {
	return s.repo.GetAllClaims(ctx)
}

func (s *Service) ClaimsForLecturer(ctx context.Context, lecturerID int64) ([]*domain.Claim, error) {
	return s.repo.GetClaimsByLecturerID(ctx, lecturerID)
}

func (s *Service) claimsWithStatus(ctx context.Context, status domain.ClaimStatus) ([]*domain.Claim, error) {
	claims, err := s.repo.GetAllClaims(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Claim, 0)
	for _, c := range claims {
		if c.Status == status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// PendingVerification lists the coordinator's queue.
func (s *Service) PendingVerification(ctx context.Context) ([]*domain.Claim, error) {
	return s.claimsWithStatus(ctx, domain.StatusPendingVerification)
}

// PendingApproval lists the manager's queue.
func (s *Service) PendingApproval(ctx context.Context) ([]*domain.Claim, error) {
	return s.claimsWithStatus(ctx, domain.StatusVerified)
}

func (s *Service) ApprovedSummary(ctx context.Context) ([]domain.MonthlySummary, error) {
	claims, err := s.repo.GetAllClaims(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SummarizeApproved(claims), nil
}

// ClaimViews joins each claim with the names of its lecturer, verifier and
// approver. References to users that no longer resolve are left blank.
func (s *Service) ClaimViews(ctx context.Context, claims []*domain.Claim) ([]*domain.ClaimView, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName()
	}

	views := make([]*domain.ClaimView, 0, len(claims))
	for _, c := range claims {
		view := &domain.ClaimView{Claim: c, LecturerName: names[c.LecturerID]}
		if c.VerifiedBy != nil {
			view.VerifiedByName = names[*c.VerifiedBy]
		}
		if c.ApprovedBy != nil {
			view.ApprovedByName = names[*c.ApprovedBy]
		}
		views = append(views, view)
	}
	return views, nil
}

// Dashboard returns the landing-page counters for viewer.
func (s *Service) Dashboard(ctx context.Context, viewer *domain.User) (*domain.Dashboard, error) {
	claims, err := s.repo.GetAllClaims(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewDashboard(viewer, users, claims), nil
}
