package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)

func sampleMonths() []domain.MonthlySummary {
	return []domain.MonthlySummary{
		{Month: "2025-11", ClaimCount: 2, TotalAmount: 6500, AverageAmount: 3250},
		{Month: "2025-10", ClaimCount: 1, TotalAmount: 10500.1, AverageAmount: 10500.1},
	}
}

func TestNewMonthly(t *testing.T) {
	m := NewMonthly(sampleMonths(), now)
	assert.Equal(t, 3, m.ClaimCount)
	assert.Equal(t, 17000.1, m.TotalAmount)
	assert.Equal(t, now, m.GeneratedAt)
}

func TestNewMonthlyEmpty(t *testing.T) {
	m := NewMonthly(nil, now)
	assert.Zero(t, m.ClaimCount)
	assert.Zero(t, m.TotalAmount)
}

func TestWriteWorkbook(t *testing.T) {
	approvedAt := time.Date(2025, 11, 28, 14, 30, 0, 0, time.UTC)
	verifier, approver := int64(3), int64(4)

	claims := []*domain.ClaimView{
		{
			Claim: &domain.Claim{
				ID: 101, LecturerID: 2, TotalHours: 25, HourlyRate: 350, TotalAmount: 8750,
				Month: "2025-11", Status: domain.StatusApproved,
				VerifiedBy: &verifier, ApprovedBy: &approver, ApprovedAt: &approvedAt,
			},
			LecturerName:   "John Lecturer",
			VerifiedByName: "Sarah Coordinator",
			ApprovedByName: "Michael Manager",
		},
		{
			Claim:        &domain.Claim{ID: 102, LecturerID: 2, TotalHours: 5, Month: "2025-11", Status: domain.StatusPendingVerification},
			LecturerName: "John Lecturer",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewMonthly(sampleMonths(), now).WriteWorkbook(&buf, claims))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ClaimsSheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Month", rows[0][0])
	assert.Equal(t, []string{"2025-11", "2", "6500", "3250"}, rows[1])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "3", rows[3][1])

	rows, err = f.GetRows(ClaimsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "101", rows[1][0])
	assert.Equal(t, "John Lecturer", rows[1][1])
	assert.Equal(t, "8750", rows[1][5])
	assert.Equal(t, "Michael Manager", rows[1][7])
	assert.Equal(t, "2025-11-28 14:30:00", rows[1][8])
}
