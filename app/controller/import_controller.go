package controller

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"idcard-sheet/service"
)

// maxRosterSize is the largest accepted roster workbook
const maxRosterSize = 5 << 20

// ImportController handles roster workbook import
type ImportController struct {
	importService *service.RosterImportService
	cards         service.CardServiceInterface
	form          *service.FormSession
	renderer      *service.SheetRenderer
}

// NewImportController creates a new ImportController
func NewImportController(
	importService *service.RosterImportService,
	cards service.CardServiceInterface,
	form *service.FormSession,
	renderer *service.SheetRenderer,
) *ImportController {
	return &ImportController{
		importService: importService,
		cards:         cards,
		form:          form,
		renderer:      renderer,
	}
}

// ImportRoster handles POST /cards/import (multipart field "file", .xlsx)
func (c *ImportController) ImportRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ ImportRoster: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRosterSize)
	if err := r.ParseMultipartForm(maxRosterSize); err != nil {
		log.Printf("❌ ImportRoster: Error parsing multipart form: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", "Roster is too large or the upload is malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("❌ ImportRoster: file field is required: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", "file field is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		log.Printf("❌ ImportRoster: Invalid file type: %s", header.Filename)
		c.renderPage(w, http.StatusBadRequest, "", "Roster must be an .xlsx file")
		return
	}

	log.Printf("📥 ImportRoster: Importing %s (%d bytes)", header.Filename, header.Size)

	result, err := c.importService.Import(file)
	if err != nil {
		log.Printf("❌ ImportRoster: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", fmt.Sprintf("Failed to import roster: %v", err))
		return
	}

	message := fmt.Sprintf("Imported %d of %d rows", result.Added, result.TotalProcessed)
	if result.SkippedOverLimit > 0 {
		message += fmt.Sprintf(", %d skipped (sheet full)", result.SkippedOverLimit)
	}

	var errMsg string
	if result.Failed > 0 {
		errMsg = fmt.Sprintf("%d rows failed: %s", result.Failed, strings.Join(result.Errors, "; "))
	}

	c.renderPage(w, http.StatusOK, message, errMsg)
}

// DownloadTemplate handles GET /cards/import/template
func (c *ImportController) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ DownloadTemplate: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	buf, err := c.importService.GenerateTemplate()
	if err != nil {
		log.Printf("❌ DownloadTemplate: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate template: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"student_roster_template.xlsx\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("❌ DownloadTemplate: Error writing response: %v", err)
	}
}

func (c *ImportController) renderPage(w http.ResponseWriter, status int, message, errMsg string) {
	renderPage(w, c.renderer, c.cards, c.form, status, message, errMsg)
}
