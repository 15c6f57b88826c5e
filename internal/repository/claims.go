package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
)

const claimColumns = `
	id, lecturer_id, total_hours, hourly_rate, total_amount, notes, month, status,
	verified_by, verified_at, approved_by, approved_at, submitted_at,
	document_path, document_original_name
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner) (*domain.Claim, error) {
	claim := &domain.Claim{}

	var (
		verifiedBy, approvedBy sql.NullInt64
		verifiedAt, approvedAt sql.NullTime
		docPath, docName       sql.NullString
	)

	dst := []any{
		&claim.ID, &claim.LecturerID, &claim.TotalHours, &claim.HourlyRate, &claim.TotalAmount, &claim.Notes, &claim.Month, &claim.Status,
		&verifiedBy, &verifiedAt, &approvedBy, &approvedAt, &claim.SubmittedAt,
		&docPath, &docName,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if verifiedBy.Valid {
		claim.VerifiedBy = &verifiedBy.Int64
	}
	if verifiedAt.Valid {
		claim.VerifiedAt = &verifiedAt.Time
	}
	if approvedBy.Valid {
		claim.ApprovedBy = &approvedBy.Int64
	}
	if approvedAt.Valid {
		claim.ApprovedAt = &approvedAt.Time
	}
	if docPath.Valid {
		claim.Document = &domain.DocumentRef{Path: docPath.String, OriginalName: docName.String}
	}

	return claim, nil
}

func documentArgs(doc *domain.DocumentRef) (sql.NullString, sql.NullString) {
	if doc == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: doc.Path, Valid: true}, sql.NullString{String: doc.OriginalName, Valid: true}
}

func (r *PostgresRepository) CreateClaim(ctx context.Context, claim *domain.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO claims (lecturer_id, total_hours, hourly_rate, total_amount, notes, month, status, submitted_at, document_path, document_original_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	docPath, docName := documentArgs(claim.Document)
	args := []any{claim.LecturerID, claim.TotalHours, claim.HourlyRate, claim.TotalAmount, claim.Notes, claim.Month, claim.Status, claim.SubmittedAt, docPath, docName}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&claim.ID); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *PostgresRepository) GetClaimByID(ctx context.Context, id int64) (*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	claim, err := scanClaim(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	return claim, nil
}

func (r *PostgresRepository) queryClaims(ctx context.Context, query string, args ...any) ([]*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := make([]*domain.Claim, 0)
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return claims, nil
}

// GetAllClaims returns claims in insertion order, which ids preserve.
func (r *PostgresRepository) GetAllClaims(ctx context.Context) ([]*domain.Claim, error) {
	return r.queryClaims(ctx, `SELECT `+claimColumns+` FROM claims ORDER BY id`)
}

func (r *PostgresRepository) GetClaimsByLecturerID(ctx context.Context, lecturerID int64) ([]*domain.Claim, error) {
	return r.queryClaims(ctx, `SELECT `+claimColumns+` FROM claims WHERE lecturer_id = $1 ORDER BY id`, lecturerID)
}

// UpdateClaim overwrites every mutable column. The lecturer reference is
// immutable and is not written.
func (r *PostgresRepository) UpdateClaim(ctx context.Context, claim *domain.Claim) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE claims
		SET
			total_hours = $1,
			hourly_rate = $2,
			total_amount = $3,
			notes = $4,
			month = $5,
			status = $6,
			verified_by = $7,
			verified_at = $8,
			approved_by = $9,
			approved_at = $10,
			document_path = $11,
			document_original_name = $12
		WHERE id = $13
		RETURNING id
	`

	docPath, docName := documentArgs(claim.Document)
	args := []any{
		claim.TotalHours, claim.HourlyRate, claim.TotalAmount, claim.Notes, claim.Month, claim.Status,
		claim.VerifiedBy, claim.VerifiedAt, claim.ApprovedBy, claim.ApprovedAt,
		docPath, docName, claim.ID,
	}

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return translateError(err)
	}

	return nil
}
