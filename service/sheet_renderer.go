package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"idcard-sheet/fittext"
	"idcard-sheet/models"
	"idcard-sheet/templates"
)

// PageState is the session state shown on the main page
type PageState struct {
	Records     []models.StudentRecord
	Mirrored    bool
	StagedPhoto string
	Message     string
	Error       string
}

// pageView is the data passed to the page and sheet templates
type pageView struct {
	PageState
	Preview  models.PreviewSurface
	Print    models.PrintSurface
	School   models.SchoolInfo
	Artwork  models.Artwork
	Geometry models.CardGeometry
	Count    int
	Capacity int
	FontCSS  template.CSS
}

// SheetRenderer keeps one mounted card view per occupied position and renders
// the preview and print surfaces from them.
type SheetRenderer struct {
	mu        sync.Mutex
	fonts     *cardFonts
	school    models.SchoolInfo
	artwork   ArtworkServiceInterface
	geometry  models.CardGeometry
	layout    *cardLayout
	fronts    [models.SheetCapacity]*frontView
	backs     [models.SheetCapacity]*backView
	templates *template.Template
	fontCSS   template.CSS
}

// NewSheetRenderer parses the templates and loads the card fonts
func NewSheetRenderer(school models.SchoolInfo, geometry models.CardGeometry, artwork ArtworkServiceInterface) (*SheetRenderer, error) {
	if err := geometry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid card geometry: %w", err)
	}

	fonts, err := loadCardFonts()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("sheet").Funcs(templateFuncs).ParseFS(templates.FS, "*.html")
	if err != nil {
		fonts.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &SheetRenderer{
		fonts:     fonts,
		school:    school,
		artwork:   artwork,
		geometry:  geometry,
		layout:    newCardLayout(geometry),
		templates: tmpl,
		fontCSS:   buildFontCSS(),
	}, nil
}

// Close unmounts every view and releases the fonts
func (r *SheetRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncViews(nil)
	r.fonts.Close()
}

// SetGeometry changes the card stock size. Every mounted text re-fits to the new slot widths.
func (r *SheetRenderer) SetGeometry(g models.CardGeometry) error {
	if err := g.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.geometry = g
	r.layout.resize(g)
	log.Printf("📐 Card geometry set to %.1fx%.1fmm", g.WidthMM, g.HeightMM)
	return nil
}

// Geometry returns the current card stock size
func (r *SheetRenderer) Geometry() models.CardGeometry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.geometry
}

// Surfaces returns the preview and print surfaces for the records
func (r *SheetRenderer) Surfaces(records []models.StudentRecord, mirrored bool) (models.PreviewSurface, models.PrintSurface) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fronts, back := r.syncViews(records)
	return ComposePreviewSurface(fronts, back, mirrored), ComposePrintSurface(fronts, back, mirrored)
}

// MountedObservers returns the number of text boxes observing the card layout
func (r *SheetRenderer) MountedObservers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout.observers()
}

// RenderPage renders the main page: preview, form and the print-only layout
func (r *SheetRenderer) RenderPage(w io.Writer, state PageState) error {
	view := r.buildView(state)
	if err := r.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	return nil
}

// RenderPrintSheet renders the standalone print sheet with every image inlined
func (r *SheetRenderer) RenderPrintSheet(records []models.StudentRecord, mirrored bool) (string, error) {
	view := r.buildView(PageState{Records: records, Mirrored: mirrored})

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "sheet.html", view); err != nil {
		return "", fmt.Errorf("failed to execute sheet template: %w", err)
	}
	return buf.String(), nil
}

func (r *SheetRenderer) buildView(state PageState) pageView {
	preview, printSurface := r.Surfaces(state.Records, state.Mirrored)

	var artwork models.Artwork
	if r.artwork != nil {
		artwork = r.artwork.Current()
	}

	return pageView{
		PageState: state,
		Preview:   preview,
		Print:     printSurface,
		School:    r.school,
		Artwork:   artwork,
		Geometry:  r.Geometry(),
		Count:     len(state.Records),
		Capacity:  models.SheetCapacity,
		FontCSS:   r.fontCSS,
	}
}

// syncViews mounts, updates and unmounts the views so that exactly the occupied
// positions have one. Must be called with mu held.
func (r *SheetRenderer) syncViews(records []models.StudentRecord) ([]models.FrontCard, models.BackCard) {
	fronts := make([]models.FrontCard, 0, len(records))

	for pos := 0; pos < models.SheetCapacity; pos++ {
		if pos < len(records) {
			record := records[pos]
			if r.fronts[pos] == nil {
				r.fronts[pos] = newFrontView(r.fonts, r.layout, r.school, record)
			} else if r.fronts[pos].record != record {
				r.fronts[pos].update(record)
			}
			if r.backs[pos] == nil {
				r.backs[pos] = newBackView(r.fonts, r.layout, r.school)
			}
			fronts = append(fronts, r.fronts[pos].card())
			continue
		}

		if r.fronts[pos] != nil {
			r.fronts[pos].unmount()
			r.fronts[pos] = nil
		}
		if r.backs[pos] != nil {
			r.backs[pos].unmount()
			r.backs[pos] = nil
		}
	}

	var back models.BackCard
	if r.backs[0] != nil {
		back = r.backs[0].card()
	}
	return fronts, back
}

var templateFuncs = template.FuncMap{
	"px": func(v float64) template.CSS {
		return template.CSS(strconv.FormatFloat(v, 'f', 2, 64) + "px")
	},
	"imageURL": imageURL,
	"add":      func(a, b int) int { return a + b },
	"dict":     dict,
}

// dict builds a map from key/value pairs so nested templates can take several values
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// imageURL marks data URIs and local paths produced by this service as safe for src attributes
func imageURL(s string) template.URL {
	if strings.HasPrefix(s, "data:image/") || strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return template.URL(s)
	}
	return ""
}

// buildFontCSS inlines the bundled fonts so the browser renders with the faces used for measuring
func buildFontCSS() template.CSS {
	faces := []struct {
		name   string
		weight string
		style  string
	}{
		{fittext.FaceRegular, "400", "normal"},
		{fittext.FaceBold, "700", "normal"},
		{fittext.FaceBoldItalic, "700", "italic"},
	}

	var b strings.Builder
	for _, f := range faces {
		fmt.Fprintf(&b, "@font-face{font-family:'CardGo';font-weight:%s;font-style:%s;src:url(data:font/ttf;base64,%s) format('truetype');}\n",
			f.weight, f.style, base64.StdEncoding.EncodeToString(fittext.BundledFont(f.name)))
	}
	return template.CSS(b.String())
}
