package repository

import (
	"context"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
)

func (r *PostgresRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT name, surname, email, hourly_rate, role, password_hash, created_at
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Name, &user.Surname, &user.Email, &user.HourlyRate, &user.Role, &user.PasswordHash, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, surname, hourly_rate, role, password_hash, created_at
		FROM users WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.Name, &user.Surname, &user.HourlyRate, &user.Role, &user.PasswordHash, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			surname = $2,
			email = $3,
			hourly_rate = $4,
			role = $5,
			password_hash = $6
		WHERE id = $7
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.Name, user.Surname, user.Email, user.HourlyRate, user.Role, user.PasswordHash, user.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *PostgresRepository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, surname, email, hourly_rate, role, password_hash, created_at
		FROM users ORDER BY id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Name, &user.Surname, &user.Email, &user.HourlyRate, &user.Role, &user.PasswordHash, &user.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (name, surname, email, hourly_rate, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	args := []any{user.Name, user.Surname, user.Email, user.HourlyRate, user.Role, user.PasswordHash}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		return translateError(err)
	}

	return nil
}
