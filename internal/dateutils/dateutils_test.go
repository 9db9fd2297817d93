package dateutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"iso date", "2024-01-05", 20240105},
		{"end of year", "2023-12-31", 20231231},
		{"date-time keeps date part", "2024-01-05T09:30:00Z", 20240105},
		{"too short", "2024-1-5", 0},
		{"empty", "", 0},
		{"non-numeric year", "abcd-01-05", 0},
		{"non-numeric month", "2024-xx-05", 0},
		{"non-numeric day", "2024-01-xy", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateInt(tt.input))
		})
	}
}

// DateInt must order the same way as the underlying dates.
func TestDateInt_Ordering(t *testing.T) {
	assert.Less(t, DateInt("2024-01-05"), DateInt("2024-01-06"))
	assert.Less(t, DateInt("2024-01-31"), DateInt("2024-02-01"))
	assert.Less(t, DateInt("2023-12-31"), DateInt("2024-01-01"))
}

func TestTruncateDateTime(t *testing.T) {
	assert.Equal(t, "2024-01-05", TruncateDateTime("2024-01-05T09:30:00+01:00"))
	assert.Equal(t, "2024-01-05", TruncateDateTime("2024-01-05"))
	assert.Equal(t, "2024", TruncateDateTime("2024"))
	assert.Equal(t, "", TruncateDateTime(""))
}
