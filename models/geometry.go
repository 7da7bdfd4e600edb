package models

import (
	"fmt"
	"math"
)

// CSS reference pixel density
const pxPerMM = 96.0 / 25.4

// Printable area of a landscape A4 sheet with 5mm margins
const (
	sheetUsableWidthMM  = 287.0
	sheetUsableHeightMM = 200.0
)

// Horizontal paddings inside a card (px), taken from the card template CSS
const (
	headerPaddingPx = 4.0  // px-1 on both sides
	detailPaddingPx = 16.0 // px-4 on both sides
	labelWidthPx    = 44.0 // label column
	labelGapPx      = 6.0
	backPaddingPx   = 12.0 // px-3 on both sides
	addressInsetPx  = 8.0  // px-2 inside the back block
)

// CardGeometry describes the physical card stock in millimetres
type CardGeometry struct {
	WidthMM  float64 `json:"widthMm"`
	HeightMM float64 `json:"heightMm"`
}

// DefaultCardGeometry returns the CR80 ID card size in portrait orientation
func DefaultCardGeometry() CardGeometry {
	return CardGeometry{WidthMM: 54, HeightMM: 85.6}
}

// Validate checks the geometry leaves room for the card content
func (g CardGeometry) Validate() error {
	if !isFinite(g.WidthMM) || !isFinite(g.HeightMM) {
		return fmt.Errorf("card size must be a finite number, got %vx%vmm", g.WidthMM, g.HeightMM)
	}
	if g.WidthMM <= 0 || g.HeightMM <= 0 {
		return fmt.Errorf("card size must be positive, got %.1fx%.1fmm", g.WidthMM, g.HeightMM)
	}
	if g.WidthMM*SheetCapacity > sheetUsableWidthMM || g.HeightMM*2 > sheetUsableHeightMM {
		return fmt.Errorf("card size %.1fx%.1fmm does not fit a 4x2 grid on a landscape A4 sheet", g.WidthMM, g.HeightMM)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WidthPx returns the card width in CSS px
func (g CardGeometry) WidthPx() float64 {
	return g.WidthMM * pxPerMM
}

// HeightPx returns the card height in CSS px
func (g CardGeometry) HeightPx() float64 {
	return g.HeightMM * pxPerMM
}

// SlotWidths returns the available width of every auto-fit text slot for this geometry.
// Widths never go below zero.
func (g CardGeometry) SlotWidths() map[TextSlot]float64 {
	w := g.WidthPx()
	back := clampZero(w - 2*backPaddingPx)
	return map[TextSlot]float64{
		SlotHeader:      clampZero(w - 2*headerPaddingPx),
		SlotDetailValue: clampZero(w - 2*detailPaddingPx - labelWidthPx - labelGapPx),
		SlotFooter:      w,
		SlotBackName:    back,
		SlotBackAddress: clampZero(back - 2*addressInsetPx),
		SlotBackPhone:   back,
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// TextSlot identifies a fixed-width text container on a card
type TextSlot string

const (
	SlotHeader      TextSlot = "header"
	SlotDetailValue TextSlot = "detail-value"
	SlotFooter      TextSlot = "footer"
	SlotBackName    TextSlot = "back-name"
	SlotBackAddress TextSlot = "back-address"
	SlotBackPhone   TextSlot = "back-phone"
)

// TextSlots lists every slot in a stable order
var TextSlots = []TextSlot{
	SlotHeader,
	SlotDetailValue,
	SlotFooter,
	SlotBackName,
	SlotBackAddress,
	SlotBackPhone,
}
