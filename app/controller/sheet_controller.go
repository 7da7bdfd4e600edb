package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"idcard-sheet/service"
)

// exportTTL is how long a generated PNG stays downloadable
const exportTTL = 10 * time.Minute

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// validFormats is a map of valid format values
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
	"png":  true,
}

// SheetController handles print output of the card sheet
type SheetController struct {
	cards      service.CardServiceInterface
	renderer   *service.SheetRenderer
	pdfService service.PDFServiceInterface
	// Temporary storage for PNG exports (key: export ID)
	exports      map[string][]byte
	exportsMutex sync.RWMutex
	exportTTL    time.Duration
}

// NewSheetController creates a new SheetController
func NewSheetController(
	cards service.CardServiceInterface,
	renderer *service.SheetRenderer,
	pdfService service.PDFServiceInterface,
) *SheetController {
	return &SheetController{
		cards:      cards,
		renderer:   renderer,
		pdfService: pdfService,
		exports:    make(map[string][]byte),
		exportTTL:  exportTTL,
	}
}

// GenerateSheet handles GET /sheet?format=html|pdf|png
func (c *SheetController) GenerateSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GenerateSheet: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if !validFormats[format] {
		log.Printf("❌ GenerateSheet: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf, png", http.StatusBadRequest)
		return
	}

	records := c.cards.Records()
	htmlContent, err := c.renderer.RenderPrintSheet(records, c.cards.Mirrored())
	if err != nil {
		log.Printf("❌ GenerateSheet: Error rendering sheet: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render sheet: %v", err), http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	switch format {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			log.Printf("❌ GenerateSheet: Error writing HTML response: %v", err)
		}

	case "pdf":
		pdfData, err := c.pdfService.GeneratePDF(ctx, htmlContent)
		if err != nil {
			log.Printf("❌ GenerateSheet: Error generating PDF: %v", err)
			http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=\"id_cards.pdf\"")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ GenerateSheet: Error writing PDF response: %v", err)
		}

	case "png":
		pngData, err := c.pdfService.GeneratePNG(ctx, htmlContent)
		if err != nil {
			log.Printf("❌ GenerateSheet: Error generating PNG: %v", err)
			http.Error(w, fmt.Sprintf("Failed to generate PNG: %v", err), http.StatusInternalServerError)
			return
		}

		exportID := c.storeExport(pngData)
		expiresAt := time.Now().Add(c.exportTTL)

		response := map[string]interface{}{
			"id":        exportID,
			"url":       "/sheet/export?id=" + exportID,
			"filename":  "id_cards.png",
			"cards":     len(records),
			"expiresAt": expiresAt.UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ GenerateSheet: Error encoding JSON response: %v", err)
		}
	}
}

// DownloadExport handles GET /sheet/export?id=XXX
// Returns a PNG export from temporary storage
func (c *SheetController) DownloadExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ DownloadExport: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	exportID := strings.TrimSpace(r.URL.Query().Get("id"))
	if exportID == "" {
		log.Printf("❌ DownloadExport: id parameter is required")
		http.Error(w, "id parameter is required", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(exportID); err != nil {
		log.Printf("❌ DownloadExport: Invalid id: %s", exportID)
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	c.exportsMutex.RLock()
	pngData, exists := c.exports[exportID]
	c.exportsMutex.RUnlock()

	if !exists {
		log.Printf("❌ DownloadExport: Export not found: %s", exportID)
		http.Error(w, "Export expired or not found", http.StatusNotFound)
		return
	}

	if !bytes.HasPrefix(pngData, pngSignature) {
		log.Printf("❌ DownloadExport: Invalid PNG data for %s (%d bytes)", exportID, len(pngData))
		http.Error(w, "Invalid PNG data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=\"id_cards.png\"")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pngData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(pngData); err != nil {
		log.Printf("❌ DownloadExport: Error writing PNG response: %v", err)
	}
}

// storeExport keeps data until the export expires and returns its ID
func (c *SheetController) storeExport(data []byte) string {
	exportID := uuid.New().String()

	c.exportsMutex.Lock()
	c.exports[exportID] = data
	c.exportsMutex.Unlock()

	time.AfterFunc(c.exportTTL, func() {
		c.exportsMutex.Lock()
		delete(c.exports, exportID)
		c.exportsMutex.Unlock()
	})

	return exportID
}
