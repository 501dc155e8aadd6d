package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"12:00", 720},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseMinutes(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "12.30", "noon", "09:00:00"} {
		_, err := ParseMinutes(in)
		assert.ErrorIs(t, err, ErrInvalidClock, in)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "09:05", FormatMinutes(545))
	assert.Equal(t, "12:00", FormatMinutes(720))
	assert.Equal(t, "23:59", FormatMinutes(1439))
}

func TestOverlaps(t *testing.T) {
	// Half-open intervals: sharing an endpoint is not an overlap.
	assert.False(t, Overlaps(540, 600, 600, 660), "back-to-back")
	assert.False(t, Overlaps(600, 660, 540, 600), "back-to-back reversed")
	assert.True(t, Overlaps(540, 600, 570, 630), "partial overlap")
	assert.True(t, Overlaps(540, 660, 570, 600), "containment")
	assert.True(t, Overlaps(570, 600, 540, 660), "contained")
	assert.True(t, Overlaps(540, 600, 540, 600), "identical")
	assert.False(t, Overlaps(540, 600, 720, 780), "disjoint")
}
