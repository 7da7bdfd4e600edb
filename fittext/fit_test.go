package fittext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monospace measures every rune as 0.6em wide and counts calls
type monospace struct {
	calls int
}

func (m *monospace) Width(text string, size float64) float64 {
	m.calls++
	return float64(len([]rune(text))) * size * 0.6
}

func TestFit_FitsAtMaxWhenShort(t *testing.T) {
	m := &monospace{}
	res := Fit(m, "ABC", 100, NewBounds(6, 16))

	assert.Equal(t, 16.0, res.Size)
	assert.Equal(t, 1, res.Steps)
	assert.False(t, res.Overflow)
	assert.NoError(t, res.Err)
}

func TestFit_ShrinksToLargestFittingSize(t *testing.T) {
	m := &monospace{}
	// 10 runes: width = 6*size, fits 60px at size 10
	res := Fit(m, "ABCDEFGHIJ", 60, NewBounds(6, 16))

	assert.Equal(t, 10.0, res.Size)
	assert.False(t, res.Overflow)
	assert.Equal(t, 13, res.Steps)
	assert.Equal(t, res.Steps, m.calls)
}

func TestFit_FloorIsMinSize(t *testing.T) {
	m := &monospace{}
	long := strings.Repeat("W", 500)
	res := Fit(m, long, 50, NewBounds(6, 9))

	assert.Equal(t, 6.0, res.Size)
	assert.True(t, res.Overflow)
	assert.NoError(t, res.Err)
}

func TestFit_StepThatDoesNotDivideRangeStopsAtMin(t *testing.T) {
	m := &monospace{}
	res := Fit(m, strings.Repeat("W", 100), 10, Bounds{Min: 5, Max: 7, Step: 0.75})

	assert.Equal(t, 5.0, res.Size)
	assert.LessOrEqual(t, res.Steps, Bounds{Min: 5, Max: 7, Step: 0.75}.MaxSteps())
}

func TestFit_EmptyContentFitsAtMax(t *testing.T) {
	m := &monospace{}
	res := Fit(m, "", 10, NewBounds(6, 16))

	assert.Equal(t, 16.0, res.Size)
	assert.Equal(t, 0, m.calls)
}

func TestFit_UnmeasurableContainer(t *testing.T) {
	for _, width := range []float64{0, -12} {
		m := &monospace{}
		res := Fit(m, "Quaid-e-Azam Public Sec School", width, NewBounds(12, 16))

		assert.Equal(t, 16.0, res.Size)
		assert.ErrorIs(t, res.Err, ErrMeasurementUnavailable)
		assert.Equal(t, 0, m.calls)
	}
}

func TestFit_TerminatesWithinBound(t *testing.T) {
	bounds := []Bounds{
		NewBounds(6, 16),
		NewBounds(5, 7),
		NewBounds(12, 12),
		{Min: 1, Max: 100, Step: 0.25},
	}
	contents := []string{"", "A", strings.Repeat("M", 40), strings.Repeat("M", 10000)}
	widths := []float64{0.001, 1, 50, 1000}

	for _, b := range bounds {
		for _, c := range contents {
			for _, w := range widths {
				m := &monospace{}
				res := Fit(m, c, w, b)
				assert.LessOrEqual(t, m.calls, b.MaxSteps(), "bounds=%v len=%d width=%g", b, len(c), w)
				assert.GreaterOrEqual(t, res.Size, b.Min)
				assert.LessOrEqual(t, res.Size, b.Max)
			}
		}
	}
}

func TestFit_LongerContentNeverGetsLargerSize(t *testing.T) {
	measurer, err := NewBundledMeasurer(FaceBold)
	require.NoError(t, err)
	defer measurer.Close()

	text := "MUHAMMAD ABDULLAH KHAN SON OF ABDUL REHMAN"
	prev := 1e9
	for i := 1; i <= len(text); i++ {
		res := Fit(measurer, text[:i], 122, NewBounds(6, 9))
		assert.LessOrEqual(t, res.Size, prev, "prefix %q", text[:i])
		prev = res.Size
	}
}

func TestBounds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"valid", NewBounds(6, 16), false},
		{"equal", NewBounds(9, 9), false},
		{"zero min", NewBounds(0, 16), true},
		{"inverted", NewBounds(16, 6), true},
		{"zero step", Bounds{Min: 6, Max: 16}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
