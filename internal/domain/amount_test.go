package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		rate  float64
		want  float64
	}{
		{"whole numbers", 25, 350, 8750},
		{"fractional hours", 7.5, 400, 3000},
		{"binary drift is rounded away", 3, 100.1, 300.3},
		{"upper bounds", 180, 1000, 180000},
		{"cents survive", 1, 123.45, 123.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeAmount(tt.hours, tt.rate))
		})
	}
}

func TestComputeAmount_IsDeterministic(t *testing.T) {
	for hours := 1.0; hours <= 180; hours += 0.25 {
		first := ComputeAmount(hours, 333.33)
		assert.Equal(t, first, ComputeAmount(hours, 333.33))
	}
}
