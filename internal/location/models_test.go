package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcontext/snapcontext/internal/location"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    location.Mode
		wantErr bool
	}{
		{"fast", location.ModeFast, false},
		{"accurate", location.ModeAccurate, false},
		{"", location.ModeFast, false},
		{"precise", "", true},
		{"FAST", "", true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			mode, err := location.ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestModeDeadline(t *testing.T) {
	assert.Equal(t, location.FastDeadline, location.ModeFast.Deadline())
	assert.Equal(t, location.AccurateDeadline, location.ModeAccurate.Deadline())
	assert.Less(t, location.FastDeadline, location.AccurateDeadline)
}
