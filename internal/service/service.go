// Package service implements the claim workflow on top of a repository:
// the user directory, claim submission and review, and the read-side queries
// used by dashboards and reports.
package service

import (
	"sync"
	"time"

	"github.com/prog6212/cmcs/backend/internal/repository"
)

type Service struct {
	repo repository.Repository
	now  func() time.Time

	// serializes every mutation so that check-then-write sequences (email
	// uniqueness, predecessor status) cannot interleave
	mu sync.Mutex
}

type Option func(*Service)

// WithClock replaces time.Now as the source of submission and decision times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
