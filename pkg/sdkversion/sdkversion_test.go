package sdkversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"8", "8.0.0"},
		{"8.0", "8.0.0"},
		{"8.0.406", "8.0.406"},
		{"9.0.100-preview.7", "9.0.100-preview.7"},
		{"10.0.0-rc.1", "10.0.0-rc.1"},
		{"0.0.0", "0.0.0"},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			v, err := Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []string{
		"",
		".",
		"8.",
		".8",
		"8..0",
		"8.0.406.1",
		"a.b.c",
		"8.x",
		"eight",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			assert.ErrorIs(t, err, ErrInvalidVersionFormat)
		})
	}
}

// parsing and re-rendering yields an equivalent version, not necessarily the
// identical string
func TestParseRoundTrip(t *testing.T) {
	for _, text := range []string{"8", "8.0", "8.0.406", "9.0.100-preview.7"} {
		first, err := Parse(text)
		require.NoError(t, err)
		second, err := Parse(first.String())
		require.NoError(t, err)
		assert.True(t, first.Equal(second), "%s did not round-trip", text)
	}
}

func TestCompareTotalOrder(t *testing.T) {
	ordered := []string{
		"7.0.100",
		"8.0.100-preview.1",
		"8.0.100-rc.2",
		"8.0.100",
		"8.0.406",
		"9.0.100",
	}

	for i, lowText := range ordered {
		low, err := Parse(lowText)
		require.NoError(t, err)

		assert.Zero(t, Compare(low, low))

		for _, highText := range ordered[i+1:] {
			high, err := Parse(highText)
			require.NoError(t, err)

			assert.Negative(t, Compare(low, high), "%s < %s", lowText, highText)
			assert.Positive(t, Compare(high, low), "%s > %s", highText, lowText)
		}
	}
}

func TestReleaseOutranksPrerelease(t *testing.T) {
	release, err := Parse("8.0.100")
	require.NoError(t, err)
	prerelease, err := Parse("8.0.100-preview.7")
	require.NoError(t, err)

	assert.Positive(t, Compare(release, prerelease))
}
