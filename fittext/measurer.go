package fittext

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Face names of the bundled Go fonts
const (
	FaceRegular    = "regular"
	FaceBold       = "bold"
	FaceBoldItalic = "bold-italic"
)

var bundledFaces = map[string][]byte{
	FaceRegular:    goregular.TTF,
	FaceBold:       gobold.TTF,
	FaceBoldItalic: gobolditalic.TTF,
}

// BundledFont returns the TrueType data of a bundled Go font, nil when unknown
func BundledFont(name string) []byte {
	return bundledFaces[name]
}

// FaceMeasurer measures text with a TrueType font. Sizes are in px at 72 DPI,
// so one font unit is one CSS px. Faces are cached per size.
type FaceMeasurer struct {
	font  *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFaceMeasurer parses a TrueType or OpenType font
func NewFaceMeasurer(ttf []byte) (*FaceMeasurer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FaceMeasurer{
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// NewBundledMeasurer returns a measurer for one of the bundled Go fonts
func NewBundledMeasurer(name string) (*FaceMeasurer, error) {
	ttf, ok := bundledFaces[name]
	if !ok {
		return nil, fmt.Errorf("unknown face %q", name)
	}
	return NewFaceMeasurer(ttf)
}

// Width implements Measurer
func (m *FaceMeasurer) Width(text string, size float64) float64 {
	face, err := m.face(size)
	if err != nil {
		return 0
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64
}

func (m *FaceMeasurer) face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = face
	return face, nil
}

// Close releases the cached faces
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, face := range m.faces {
		face.Close()
		delete(m.faces, size)
	}
	return nil
}

// Tracked adds letter spacing, expressed in em, after every rune
func Tracked(m Measurer, em float64) Measurer {
	return MeasurerFunc(func(text string, size float64) float64 {
		return m.Width(text, size) + em*size*float64(utf8.RuneCountInString(text))
	})
}

// Upper measures the upper-cased text
func Upper(m Measurer) Measurer {
	return MeasurerFunc(func(text string, size float64) float64 {
		return m.Width(strings.ToUpper(text), size)
	})
}
