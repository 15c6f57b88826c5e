package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prog6212/cmcs/backend/internal/domain"
)

// SubmitClaim validates the draft, snapshots the lecturer's current rate and
// stores a new claim pending verification. Nothing is stored on failure.
func (s *Service) SubmitClaim(ctx context.Context, draft domain.ClaimDraft) (*domain.Claim, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lecturer, err := s.repo.GetUserByID(ctx, draft.LecturerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lecturer %d: %w", draft.LecturerID, domain.ErrNotFound)
		}
		return nil, err
	}
	if lecturer.Role != domain.RoleLecturer {
		return nil, domain.NewValidationError("lecturerID", "only lecturers can submit claims")
	}

	claim := domain.NewClaim(&draft, lecturer.HourlyRate, s.now())
	if err := s.repo.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}

	slog.Info("claim submitted", "claim", claim.ID, "lecturer", claim.LecturerID, "month", claim.Month, "amount", claim.TotalAmount)
	return claim, nil
}

// VerifyClaim is the coordinator's approval of a pending claim.
func (s *Service) VerifyClaim(ctx context.Context, claimID, coordinatorID int64) (*domain.Claim, error) {
	return s.transition(ctx, claimID, func(c *domain.Claim) error {
		return c.Verify(coordinatorID, s.now())
	})
}

// ApproveClaim is the manager's final approval of a verified claim.
func (s *Service) ApproveClaim(ctx context.Context, claimID, managerID int64) (*domain.Claim, error) {
	return s.transition(ctx, claimID, func(c *domain.Claim) error {
		return c.Approve(managerID, s.now())
	})
}

// RejectClaim rejects at the coordinator stage (StageVerification) or the
// manager stage (StageApproval).
func (s *Service) RejectClaim(ctx context.Context, claimID, actorID int64, stage domain.Stage) (*domain.Claim, error) {
	return s.transition(ctx, claimID, func(c *domain.Claim) error {
		return c.Reject(stage, actorID, s.now())
	})
}

func (s *Service) transition(ctx context.Context, claimID int64, apply func(c *domain.Claim) error) (*domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, err := s.repo.GetClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	from := claim.Status
	if err := apply(claim); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateClaim(ctx, claim); err != nil {
		return nil, err
	}

	slog.Info("claim status changed", "claim", claim.ID, "from", from, "to", claim.Status)
	return claim, nil
}
