package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardGeometry_Validate(t *testing.T) {
	assert.NoError(t, DefaultCardGeometry().Validate())
	assert.Error(t, CardGeometry{WidthMM: 0, HeightMM: 85.6}.Validate())
	assert.Error(t, CardGeometry{WidthMM: 80, HeightMM: 85.6}.Validate())
	assert.Error(t, CardGeometry{WidthMM: 54, HeightMM: 120}.Validate())

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Error(t, CardGeometry{WidthMM: v, HeightMM: 85.6}.Validate(), "width %v", v)
		assert.Error(t, CardGeometry{WidthMM: 54, HeightMM: v}.Validate(), "height %v", v)
	}
}

func TestCardGeometry_SlotWidths(t *testing.T) {
	g := DefaultCardGeometry()
	widths := g.SlotWidths()

	assert.Len(t, widths, len(TextSlots))
	assert.InDelta(t, 204.09, g.WidthPx(), 0.01)
	assert.InDelta(t, g.WidthPx()-8, widths[SlotHeader], 1e-9)
	assert.InDelta(t, g.WidthPx()-82, widths[SlotDetailValue], 1e-9)
	assert.Less(t, widths[SlotBackAddress], widths[SlotBackName])

	tiny := CardGeometry{WidthMM: 5, HeightMM: 5}.SlotWidths()
	assert.Equal(t, 0.0, tiny[SlotDetailValue])
}
