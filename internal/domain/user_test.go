package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLecturer() *User {
	return &User{Name: "John", Surname: "Lecturer", Email: "john@university.com", HourlyRate: 350, Role: RoleLecturer}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(u *User)
		field string
	}{
		{"valid", func(u *User) {}, ""},
		{"missing name", func(u *User) { u.Name = " " }, "name"},
		{"missing surname", func(u *User) { u.Surname = "" }, "surname"},
		{"missing email", func(u *User) { u.Email = "" }, "email"},
		{"unknown role", func(u *User) { u.Role = "Dean" }, "role"},
		{"rate below range", func(u *User) { u.HourlyRate = 99.99 }, "hourlyRate"},
		{"rate above range", func(u *User) { u.HourlyRate = 1000.01 }, "hourlyRate"},
		{"rate at lower bound", func(u *User) { u.HourlyRate = 100 }, ""},
		{"rate at upper bound", func(u *User) { u.HourlyRate = 1000 }, ""},
		{"non-billing role ignores rate", func(u *User) { u.Role = RoleCoordinator; u.HourlyRate = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validLecturer()
			tt.edit(u)
			err := u.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "John Lecturer", validLecturer().FullName())
	assert.Equal(t, "Sarah", (&User{Name: "Sarah"}).FullName())
}
