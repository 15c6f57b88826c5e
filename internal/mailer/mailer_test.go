package mailer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip mimics the worker, which only ever sees the queued JSON.
func roundTrip(t *testing.T, m domain.MailMessage) *domain.MailMessage {
	t.Helper()
	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded domain.MailMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return &decoded
}

func render(t *testing.T, c *Composer, m domain.MailMessage) string {
	t.Helper()
	msg, err := c.Compose(roundTrip(t, m))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestComposeCreateUser(t *testing.T) {
	c, err := NewComposer("noreply@university.com")
	require.NoError(t, err)

	out := render(t, c, domain.MailMessage{
		Type: domain.MailTypeCreateUser,
		To:   "thabo@university.com",
		Data: domain.CreateUserMailData{FullName: "Thabo Nkosi", Email: "thabo@university.com", Role: "Lecturer", Password: "s3cret"},
	})

	assert.Contains(t, out, "CMCS - Your account")
	assert.Contains(t, out, "thabo@university.com")
	assert.Contains(t, out, "Thabo Nkosi")
	assert.Contains(t, out, "s3cret")
}

func TestComposeClaimStatus(t *testing.T) {
	c, err := NewComposer("noreply@university.com")
	require.NoError(t, err)

	out := render(t, c, domain.MailMessage{
		Type: domain.MailTypeClaimStatus,
		To:   "lecturer@university.com",
		Data: domain.ClaimStatusMailData{FullName: "John Lecturer", ClaimID: 101, Month: "2025-11", Status: "Approved", TotalAmount: 8750, DecidedBy: "Michael Manager"},
	})

	assert.Contains(t, out, "CMCS - Claim status update")
	assert.Contains(t, out, "R8750.00")
	assert.Contains(t, out, "Michael Manager")
}

func TestComposeErrors(t *testing.T) {
	c, err := NewComposer("noreply@university.com")
	require.NoError(t, err)

	_, err = c.Compose(&domain.MailMessage{Type: "reset_password", To: "a@b.com"})
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = c.Compose(&domain.MailMessage{Type: domain.MailTypeCreateUser, To: "not an address"})
	require.Error(t, err)
}
