package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/repository"
	"github.com/prog6212/cmcs/backend/internal/service"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUsers is one account per role, created in this order so that the
// in-memory directory assigns ids 1 to 4.
var DefaultUsers = []domain.User{
	{Name: "HR", Surname: "Manager", Email: "hr@university.com", Role: domain.RoleHR},
	{Name: "John", Surname: "Lecturer", Email: "lecturer@university.com", HourlyRate: 350, Role: domain.RoleLecturer},
	{Name: "Sarah", Surname: "Coordinator", Email: "coordinator@university.com", Role: domain.RoleCoordinator},
	{Name: "Michael", Surname: "Manager", Email: "manager@university.com", Role: domain.RoleManager},
}

// Bootstrap makes sure every default user exists. Users already present are
// left untouched.
func Bootstrap(ctx context.Context, svc *service.Service, password string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, u := range DefaultUsers {
		user := u
		user.PasswordHash = string(passwordHash)
		if _, err := svc.AddUser(ctx, &user); err != nil {
			switch {
			case errors.Is(err, domain.ErrDuplicateEmail):
				// already bootstrapped
			default:
				return err
			}
		}
	}

	return nil
}

// SampleClaims stores two historical claims for the default lecturer, one
// verified and one approved, when the claim store is still empty.
func SampleClaims(ctx context.Context, repo repository.Repository, now time.Time) error {
	existing, err := repo.GetAllClaims(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	lecturer, err := repo.GetUserByEmail(ctx, "lecturer@university.com")
	if err != nil {
		return err
	}
	coordinator, err := repo.GetUserByEmail(ctx, "coordinator@university.com")
	if err != nil {
		return err
	}
	manager, err := repo.GetUserByEmail(ctx, "manager@university.com")
	if err != nil {
		return err
	}

	verified := domain.NewClaim(&domain.ClaimDraft{LecturerID: lecturer.ID, TotalHours: 25, Month: "2025-11"}, lecturer.HourlyRate, now.AddDate(0, 0, -2))
	if err := verified.Verify(coordinator.ID, now); err != nil {
		return err
	}

	approved := domain.NewClaim(&domain.ClaimDraft{LecturerID: lecturer.ID, TotalHours: 30, Month: "2025-10"}, lecturer.HourlyRate, now.AddDate(0, 0, -15))
	if err := approved.Verify(coordinator.ID, now.AddDate(0, 0, -10)); err != nil {
		return err
	}
	if err := approved.Approve(manager.ID, now.AddDate(0, 0, -5)); err != nil {
		return err
	}

	for _, c := range []*domain.Claim{verified, approved} {
		if err := repo.CreateClaim(ctx, c); err != nil {
			return err
		}
	}

	slog.Info("sample claims inserted", "count", 2)
	return nil
}

// ImportLecturers registers every roster row as a lecturer. The first row is
// the header and must name the columns name, surname, email and hourly_rate
// in any order. Bad rows are logged and skipped.
func ImportLecturers(ctx context.Context, svc *service.Service, rows [][]string, passwordHash string) (int, error) {
	if len(rows) == 0 {
		return 0, errors.New("roster is empty")
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"name", "surname", "email", "hourly_rate"} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("roster is missing column %s", required)
		}
	}

	cell := func(row []string, column string) string {
		i := columns[column]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	cnt := 0
	for _, row := range rows[1:] {
		rate, err := strconv.ParseFloat(strings.TrimSpace(cell(row, "hourly_rate")), 64)
		if err != nil {
			slog.Error("invalid hourly rate", "row", row, "error", err)
			continue
		}

		user := &domain.User{
			Name:         cell(row, "name"),
			Surname:      cell(row, "surname"),
			Email:        cell(row, "email"),
			HourlyRate:   rate,
			Role:         domain.RoleLecturer,
			PasswordHash: passwordHash,
		}
		if _, err := svc.AddUser(ctx, user); err != nil {
			slog.Error("failed to import lecturer", "email", user.Email, "error", err)
			continue
		}

		cnt++
	}

	return cnt, nil
}

// ReadRoster loads the rows of a .csv file or of the first sheet of an
// .xlsx workbook.
func ReadRoster(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return readCSV(file)
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readSheet(f)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", filepath.Ext(path))
	}
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readSheet(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
