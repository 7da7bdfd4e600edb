// Package fittext sizes a single line of text so it fits a fixed-width container.
//
// A Box starts at the maximum size of its Bounds and steps the size down until the
// measured width fits the container or the minimum size is reached. At the minimum
// the text is rendered even if it still overflows.
package fittext

import (
	"errors"
	"fmt"
	"math"
)

// DefaultStep is the size decrement between two measurements
const DefaultStep = 0.5

// ErrMeasurementUnavailable is reported when the container has no usable width yet
var ErrMeasurementUnavailable = errors.New("container width is not measurable")

// Measurer returns the rendered width of text at a font size, in the same unit as the container width
type Measurer interface {
	Width(text string, size float64) float64
}

// MeasurerFunc adapts a function to Measurer
type MeasurerFunc func(text string, size float64) float64

// Width implements Measurer
func (f MeasurerFunc) Width(text string, size float64) float64 {
	return f(text, size)
}

// Bounds is the allowed size range
type Bounds struct {
	Min  float64
	Max  float64
	Step float64
}

// NewBounds returns bounds with the default step
func NewBounds(min, max float64) Bounds {
	return Bounds{Min: min, Max: max, Step: DefaultStep}
}

// Validate checks 0 < Min <= Max and Step > 0
func (b Bounds) Validate() error {
	if b.Min <= 0 || b.Max <= 0 {
		return fmt.Errorf("size bounds must be positive, got [%g, %g]", b.Min, b.Max)
	}
	if b.Min > b.Max {
		return fmt.Errorf("min size %g is greater than max size %g", b.Min, b.Max)
	}
	if b.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", b.Step)
	}
	return nil
}

// MaxSteps is the upper bound of measurements one fit can take
func (b Bounds) MaxSteps() int {
	return int(math.Ceil((b.Max-b.Min)/b.Step)) + 1
}

func (b Bounds) withDefaults() Bounds {
	if b.Step <= 0 {
		b.Step = DefaultStep
	}
	if b.Min > b.Max {
		b.Min, b.Max = b.Max, b.Min
	}
	return b
}

// Result is the outcome of one fit
type Result struct {
	Size     float64
	Steps    int  // measurements taken
	Overflow bool // text is wider than the container even at Size
	Err      error
}

// Fit returns the largest size in bounds at which text fits containerWidth.
// Empty text fits at Max. A container without width yields Max and ErrMeasurementUnavailable.
func Fit(m Measurer, text string, containerWidth float64, bounds Bounds) Result {
	b := bounds.withDefaults()

	if containerWidth <= 0 || math.IsNaN(containerWidth) {
		return Result{Size: b.Max, Err: ErrMeasurementUnavailable}
	}
	if text == "" {
		return Result{Size: b.Max}
	}

	size := b.Max
	width := m.Width(text, size)
	steps := 1
	for n := 1; width > containerWidth && size > b.Min; n++ {
		// Derived from Max so repeated steps do not accumulate rounding error
		size = b.Max - float64(n)*b.Step
		if size < b.Min {
			size = b.Min
		}
		width = m.Width(text, size)
		steps++
	}

	return Result{
		Size:     size,
		Steps:    steps,
		Overflow: width > containerWidth,
	}
}
