package repository

import (
	"context"
	"database/sql"

	"github.com/prog6212/cmcs/backend/internal/config"
	"github.com/prog6212/cmcs/backend/internal/domain"
)

// Repository holds users and claims. Lookups of unknown ids return
// domain.ErrNotFound, and a second user with the same email returns
// domain.ErrDuplicateEmail.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	CreateClaim(ctx context.Context, claim *domain.Claim) error
	GetClaimByID(ctx context.Context, id int64) (*domain.Claim, error)
	GetAllClaims(ctx context.Context) ([]*domain.Claim, error)
	GetClaimsByLecturerID(ctx context.Context, lecturerID int64) ([]*domain.Claim, error)
	UpdateClaim(ctx context.Context, claim *domain.Claim) error
}

type PostgresRepository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewPostgresRepository(cfg *config.Config, dbpool *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
