package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/prog6212/cmcs/backend/internal/domain"
)

func normalizeUser(user *domain.User) {
	user.Name = strings.TrimSpace(user.Name)
	user.Surname = strings.TrimSpace(user.Surname)
	user.Email = strings.TrimSpace(user.Email)
}

// AddUser registers a new account and returns its id.
func (s *Service) AddUser(ctx context.Context, user *domain.User) (int64, error) {
	normalizeUser(user)
	if err := user.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetUserByEmail(ctx, user.Email); err == nil {
		return 0, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return 0, err
	}

	slog.Info("user created", "id", user.ID, "role", user.Role)
	return user.ID, nil
}

// UpdateUser applies an HR edit. Claims already submitted keep their rate
// snapshot whatever the new hourly rate is.
func (s *Service) UpdateUser(ctx context.Context, user *domain.User) error {
	normalizeUser(user)
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetUserByID(ctx, user.ID); err != nil {
		return err
	}

	existing, err := s.repo.GetUserByEmail(ctx, user.Email)
	switch {
	case err == nil && existing.ID != user.ID:
		return domain.ErrDuplicateEmail
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	slog.Info("user updated", "id", user.ID, "role", user.Role)
	return nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.GetAllUsers(ctx)
}
