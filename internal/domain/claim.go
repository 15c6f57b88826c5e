package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

type ClaimStatus string

const (
	StatusPendingVerification ClaimStatus = "Pending Verification"
	StatusVerified            ClaimStatus = "Verified"
	StatusRejected            ClaimStatus = "Rejected"
	StatusApproved            ClaimStatus = "Approved"
)

// Terminal reports whether no further transition may leave the status.
func (s ClaimStatus) Terminal() bool {
	return s == StatusRejected || s == StatusApproved
}

// Stage is the review step a decision belongs to.
type Stage string

const (
	StageVerification Stage = "verification"
	StageApproval     Stage = "approval"
)

const (
	MinClaimHours  = 1
	MaxClaimHours  = 180
	MaxNotesLength = 500
)

// DocumentRef points at a supporting document held by the document store.
type DocumentRef struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalName"`
}

type Claim struct {
	ID          int64        `json:"id"`
	LecturerID  int64        `json:"lecturerID"`
	TotalHours  float64      `json:"totalHours"`
	HourlyRate  float64      `json:"hourlyRate"`
	TotalAmount float64      `json:"totalAmount"`
	Notes       string       `json:"notes"`
	Month       string       `json:"month"`
	Status      ClaimStatus  `json:"status"`
	VerifiedBy  *int64       `json:"verifiedBy"`
	VerifiedAt  *time.Time   `json:"verifiedAt"`
	ApprovedBy  *int64       `json:"approvedBy"`
	ApprovedAt  *time.Time   `json:"approvedAt"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Document    *DocumentRef `json:"document"`
}

// Clone returns a deep copy so that stored records are never aliased by callers.
func (c *Claim) Clone() *Claim {
	cp := *c
	if c.VerifiedBy != nil {
		v := *c.VerifiedBy
		cp.VerifiedBy = &v
	}
	if c.VerifiedAt != nil {
		v := *c.VerifiedAt
		cp.VerifiedAt = &v
	}
	if c.ApprovedBy != nil {
		v := *c.ApprovedBy
		cp.ApprovedBy = &v
	}
	if c.ApprovedAt != nil {
		v := *c.ApprovedAt
		cp.ApprovedAt = &v
	}
	if c.Document != nil {
		d := *c.Document
		cp.Document = &d
	}
	return &cp
}

// ClaimDraft is the lecturer input for a new claim.
type ClaimDraft struct {
	LecturerID int64
	TotalHours float64
	Month      string
	Notes      string
	Document   *DocumentRef
}

func ValidateHours(hours float64) error {
	// written this way so that NaN is rejected too
	if !(hours >= MinClaimHours && hours <= MaxClaimHours) {
		return NewValidationError("totalHours", "hours must be between 1 and 180")
	}
	return nil
}

func (d *ClaimDraft) Validate() error {
	if strings.TrimSpace(d.Month) == "" {
		return NewValidationError("month", "month is required")
	}
	if err := ValidateHours(d.TotalHours); err != nil {
		return err
	}
	if utf8.RuneCountInString(d.Notes) > MaxNotesLength {
		return NewValidationError("notes", "notes cannot exceed 500 characters")
	}
	if d.Document != nil && strings.TrimSpace(d.Document.Path) == "" {
		return NewValidationError("document", "document path is required")
	}
	return nil
}

// NewClaim builds a pending claim from a validated draft, snapshotting rate.
func NewClaim(d *ClaimDraft, rate float64, now time.Time) *Claim {
	c := &Claim{
		LecturerID:  d.LecturerID,
		TotalHours:  d.TotalHours,
		HourlyRate:  rate,
		TotalAmount: ComputeAmount(d.TotalHours, rate),
		Notes:       strings.TrimSpace(d.Notes),
		Month:       strings.TrimSpace(d.Month),
		Status:      StatusPendingVerification,
		SubmittedAt: now,
	}
	if d.Document != nil {
		doc := *d.Document
		c.Document = &doc
	}
	return c
}

func (c *Claim) requireStatus(want, next ClaimStatus) error {
	if c.Status != want {
		return &TransitionError{ClaimID: c.ID, From: c.Status, To: next}
	}
	return nil
}

func (c *Claim) Verify(coordinatorID int64, at time.Time) error {
	return c.decideVerification(StatusVerified, coordinatorID, at)
}

func (c *Claim) Approve(managerID int64, at time.Time) error {
	return c.decideApproval(StatusApproved, managerID, at)
}

// Reject records a rejection at the given stage. Rejected is terminal.
func (c *Claim) Reject(stage Stage, actorID int64, at time.Time) error {
	switch stage {
	case StageVerification:
		return c.decideVerification(StatusRejected, actorID, at)
	case StageApproval:
		return c.decideApproval(StatusRejected, actorID, at)
	default:
		return NewValidationError("stage", "unknown review stage")
	}
}

func (c *Claim) decideVerification(next ClaimStatus, actorID int64, at time.Time) error {
	if err := c.requireStatus(StatusPendingVerification, next); err != nil {
		return err
	}
	c.Status = next
	c.VerifiedBy = &actorID
	c.VerifiedAt = &at
	return nil
}

func (c *Claim) decideApproval(next ClaimStatus, actorID int64, at time.Time) error {
	if err := c.requireStatus(StatusVerified, next); err != nil {
		return err
	}
	c.Status = next
	c.ApprovedBy = &actorID
	c.ApprovedAt = &at
	return nil
}

// ClaimView is a claim joined with the display names of the users it references.
type ClaimView struct {
	*Claim
	LecturerName   string `json:"lecturerName"`
	VerifiedByName string `json:"verifiedByName,omitempty"`
	ApprovedByName string `json:"approvedByName,omitempty"`
}

type MonthlySummary struct {
	Month         string  `json:"month"`
	ClaimCount    int     `json:"claimCount"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
}

// SummarizeApproved groups approved claims by month, in the order each month
// is first seen.
func SummarizeApproved(claims []*Claim) []MonthlySummary {
	summaries := make([]MonthlySummary, 0)
	index := make(map[string]int)

	for _, c := range claims {
		if c.Status != StatusApproved {
			continue
		}
		i, ok := index[c.Month]
		if !ok {
			i = len(summaries)
			index[c.Month] = i
			summaries = append(summaries, MonthlySummary{Month: c.Month})
		}
		summaries[i].ClaimCount++
		summaries[i].TotalAmount += c.TotalAmount
	}

	for i := range summaries {
		summaries[i].TotalAmount = math.Round(summaries[i].TotalAmount*100) / 100
		summaries[i].AverageAmount = math.Round(summaries[i].TotalAmount/float64(summaries[i].ClaimCount)*100) / 100
	}
	return summaries
}
