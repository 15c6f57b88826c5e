// Package report turns approved claims into the monthly payment report, both
// as a JSON-friendly value and as an Excel workbook for payroll.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	ClaimsSheet  = "Approved Claims"
)

type Monthly struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Months      []domain.MonthlySummary `json:"months"`
	ClaimCount  int                     `json:"claimCount"`
	TotalAmount float64                 `json:"totalAmount"`
}

func NewMonthly(months []domain.MonthlySummary, now time.Time) *Monthly {
	m := &Monthly{GeneratedAt: now, Months: months}
	for _, s := range months {
		m.ClaimCount += s.ClaimCount
		m.TotalAmount += s.TotalAmount
	}
	m.TotalAmount = math.Round(m.TotalAmount*100) / 100
	return m
}

// Workbook renders the report. claims are the approved claim views listed on
// the second sheet; other statuses are skipped.
func (m *Monthly) Workbook(claims []*domain.ClaimView) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(ClaimsSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := m.writeSummary(f, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeClaims(f, bold, claims); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (m *Monthly) writeSummary(f *excelize.File, headerStyle int) error {
	header := []any{"Month", "Approved Claims", "Total Amount (R)", "Average Amount (R)"}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, 1, 1, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, s := range m.Months {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{s.Month, s.ClaimCount, s.TotalAmount, s.AverageAmount}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	totals := []any{"Total", m.ClaimCount, m.TotalAmount}
	if err := f.SetSheetRow(SummarySheet, cell, &totals); err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, row, row, headerStyle); err != nil {
		return err
	}

	return f.SetColWidth(SummarySheet, "A", "D", 20)
}

func writeClaims(f *excelize.File, headerStyle int, claims []*domain.ClaimView) error {
	header := []any{"Claim ID", "Lecturer", "Month", "Hours", "Rate (R)", "Amount (R)", "Verified By", "Approved By", "Approved At"}
	if err := f.SetSheetRow(ClaimsSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(ClaimsSheet, 1, 1, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, c := range claims {
		if c.Status != domain.StatusApproved {
			continue
		}

		approvedAt := ""
		if c.ApprovedAt != nil {
			approvedAt = c.ApprovedAt.Format(time.DateTime)
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{c.ID, c.LecturerName, c.Month, c.TotalHours, c.HourlyRate, c.TotalAmount, c.VerifiedByName, c.ApprovedByName, approvedAt}
		if err := f.SetSheetRow(ClaimsSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(ClaimsSheet, "A", "I", 18)
}

// WriteWorkbook streams the xlsx file to w.
func (m *Monthly) WriteWorkbook(w io.Writer, claims []*domain.ClaimView) error {
	f, err := m.Workbook(claims)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
