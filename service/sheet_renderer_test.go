package service

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcard-sheet/models"
)

// text boxes mounted per occupied position: 4 on the front, 3 on the back
const boxesPerCard = 7

const longName = "MUHAMMAD ABDULLAH KHAN YOUSAFZAI"

type stubArtwork struct {
	artwork models.Artwork
}

func (s stubArtwork) Load(ctx context.Context) (models.Artwork, error) {
	return s.artwork, nil
}

func (s stubArtwork) Current() models.Artwork {
	return s.artwork
}

func newTestRenderer(t *testing.T) *SheetRenderer {
	t.Helper()
	r, err := NewSheetRenderer(testSchool(), models.DefaultCardGeometry(), nil)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func records(names ...string) []models.StudentRecord {
	out := make([]models.StudentRecord, 0, len(names))
	for _, n := range names {
		out = append(out, student(n))
	}
	return out
}

func TestNewSheetRenderer_RejectsInvalidGeometry(t *testing.T) {
	_, err := NewSheetRenderer(testSchool(), models.CardGeometry{WidthMM: 0, HeightMM: 85.6}, nil)
	assert.Error(t, err)
}

func TestSheetRenderer_ViewsFollowOccupancy(t *testing.T) {
	r := newTestRenderer(t)
	assert.Equal(t, 0, r.MountedObservers())

	r.Surfaces(records("A", "B", "C"), false)
	assert.Equal(t, 3*boxesPerCard, r.MountedObservers())

	r.Surfaces(records("A", "B", "C", "D"), false)
	assert.Equal(t, 4*boxesPerCard, r.MountedObservers())

	// Clearing unmounts every view
	r.Surfaces(nil, false)
	assert.Equal(t, 0, r.MountedObservers())
}

func TestSheetRenderer_SurfacesSizes(t *testing.T) {
	r := newTestRenderer(t)

	preview, printSurface := r.Surfaces(records("Ali", longName), false)
	require.Len(t, preview.Cards, 2)

	short := preview.Cards[0].Front
	long := preview.Cards[1].Front
	assert.Equal(t, detailBounds.Max, short.NameSize)
	assert.Less(t, long.NameSize, detailBounds.Max)
	assert.GreaterOrEqual(t, long.NameSize, detailBounds.Min)

	for _, size := range []float64{short.HeaderSize, short.FooterSize} {
		assert.Greater(t, size, 0.0)
	}
	back := preview.Cards[0].Back
	assert.GreaterOrEqual(t, back.SchoolNameSize, backNameBounds.Min)
	assert.LessOrEqual(t, back.SchoolNameSize, backNameBounds.Max)
	assert.GreaterOrEqual(t, back.AddressSize, backAddressBounds.Min)
	assert.LessOrEqual(t, back.AddressSize, backAddressBounds.Max)

	require.NotNil(t, printSurface.Fronts[1].Front)
	assert.Equal(t, long.NameSize, printSurface.Fronts[1].Front.NameSize)
	assert.False(t, printSurface.Fronts[2].Occupied)
}

func TestSheetRenderer_PositionTakesNewRecord(t *testing.T) {
	r := newTestRenderer(t)

	preview, _ := r.Surfaces(records(longName), false)
	longSize := preview.Cards[0].Front.NameSize

	preview, _ = r.Surfaces(records("Ali"), false)
	assert.Equal(t, "Ali", preview.Cards[0].Front.Student.Name)
	assert.Equal(t, detailBounds.Max, preview.Cards[0].Front.NameSize)
	assert.Less(t, longSize, preview.Cards[0].Front.NameSize)
	assert.Equal(t, boxesPerCard, r.MountedObservers())
}

func TestSheetRenderer_SetGeometryRefits(t *testing.T) {
	r := newTestRenderer(t)

	preview, _ := r.Surfaces(records(longName), false)
	before := preview.Cards[0].Front.NameSize

	require.NoError(t, r.SetGeometry(models.CardGeometry{WidthMM: 70, HeightMM: 90}))
	assert.Equal(t, 70.0, r.Geometry().WidthMM)

	preview, _ = r.Surfaces(records(longName), false)
	assert.Greater(t, preview.Cards[0].Front.NameSize, before)

	err := r.SetGeometry(models.CardGeometry{WidthMM: 80, HeightMM: 85.6})
	assert.Error(t, err)
	assert.Equal(t, 70.0, r.Geometry().WidthMM)
}

func TestSheetRenderer_SetGeometryRejectsNonFinite(t *testing.T) {
	r := newTestRenderer(t)
	r.Surfaces(records(longName), false)

	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		assert.Error(t, r.SetGeometry(models.CardGeometry{WidthMM: v, HeightMM: v}))
	}
	assert.Equal(t, models.DefaultCardGeometry(), r.Geometry())

	html, err := r.RenderPrintSheet(records(longName), false)
	require.NoError(t, err)
	assert.NotContains(t, html, "NaNpx")
	assert.NotContains(t, html, "Infpx")
}

func TestSheetRenderer_RenderPrintSheet(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.RenderPrintSheet(records("Ayesha Siddiqa", "Bilal Ahmed", "Hamza Tariq"), false)
	require.NoError(t, err)

	assert.Contains(t, html, "Ayesha Siddiqa")
	assert.Contains(t, html, "Hamza Tariq")
	assert.Contains(t, html, "Quaid-e-Azam Public Sec School")
	assert.Contains(t, html, "@font-face")
	// One empty position in each row
	assert.Equal(t, 2, strings.Count(html, `class="id-card placeholder"`))
	assert.NotContains(t, html, `print-card-wrapper flipped`)
	assert.Equal(t, 3*boxesPerCard, r.MountedObservers())
}

func TestSheetRenderer_RenderPrintSheetMirrored(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.RenderPrintSheet(records("Ayesha Siddiqa"), true)
	require.NoError(t, err)

	assert.Equal(t, 2*models.SheetCapacity, strings.Count(html, `print-card-wrapper flipped`))
	assert.Equal(t, 6, strings.Count(html, `class="id-card placeholder"`))
}

func TestSheetRenderer_RenderPage(t *testing.T) {
	r, err := NewSheetRenderer(testSchool(), models.DefaultCardGeometry(), stubArtwork{
		artwork: models.Artwork{LogoURI: "data:image/png;base64,TE9HTw=="},
	})
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	err = r.RenderPage(&buf, PageState{
		Records:     records("Ayesha Siddiqa"),
		Mirrored:    true,
		StagedPhoto: "data:image/jpeg;base64,UEhPVE8=",
		Error:       "Maximum 4 students per page",
	})
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "Cards Added: 1/4")
	assert.Contains(t, page, "Ayesha Siddiqa")
	assert.Contains(t, page, "Maximum 4 students per page")
	assert.Contains(t, page, "data:image/png;base64,TE9HTw==")
	assert.Contains(t, page, "data:image/jpeg;base64,UEhPVE8=")
	assert.Contains(t, page, "preview cosmetic")
	assert.Contains(t, page, ".preview.cosmetic { transform: scaleX(-1); opacity: 0.6; }")
	assert.Contains(t, page, "Mirrored (Ready)")
	assert.Contains(t, page, "Add to Sheet")
}

func TestSheetRenderer_RenderPageFullSheet(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageState{Records: records("A", "B", "C", "D")}))

	page := buf.String()
	assert.Contains(t, page, "Cards Added: 4/4")
	assert.Contains(t, page, "Sheet Full")
	assert.NotContains(t, page, "preview cosmetic")
	assert.Contains(t, page, "Flip for Print")
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AA==", string(imageURL("data:image/png;base64,AA==")))
	assert.Equal(t, "/static/artwork/logo.png", string(imageURL("/static/artwork/logo.png")))
	assert.Empty(t, string(imageURL("javascript:alert(1)")))
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = dict("a")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}
