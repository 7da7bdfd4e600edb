package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"idcard-sheet/models"
	"idcard-sheet/repository"
	"idcard-sheet/service"
)

// maxPhotoSize is the largest accepted photo upload
const maxPhotoSize = 10 << 20

// CardController handles the sheet page and its form actions
type CardController struct {
	cards    service.CardServiceInterface
	form     *service.FormSession
	renderer *service.SheetRenderer
}

// NewCardController creates a new CardController
func NewCardController(cards service.CardServiceInterface, form *service.FormSession, renderer *service.SheetRenderer) *CardController {
	return &CardController{
		cards:    cards,
		form:     form,
		renderer: renderer,
	}
}

// Index handles GET /
func (c *CardController) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		log.Printf("❌ Index: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.renderPage(w, http.StatusOK, "", "")
}

// AddCard handles POST /cards
func (c *CardController) AddCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ AddCard: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("❌ AddCard: Error parsing form: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", "Invalid form data")
		return
	}

	input := models.StudentInput{
		Name:               r.PostFormValue("name"),
		FatherName:         r.PostFormValue("fatherName"),
		ClassName:          r.PostFormValue("className"),
		RegistrationNumber: r.PostFormValue("registrationNumber"),
	}

	if _, err := c.form.Submit(input); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			log.Printf("⚠️  AddCard: %v", err)
			c.renderPage(w, http.StatusConflict, "", fmt.Sprintf("Maximum %d students per page", models.SheetCapacity))
		case errors.Is(err, service.ErrMissingFields):
			log.Printf("⚠️  AddCard: %v", err)
			c.renderPage(w, http.StatusBadRequest, "", err.Error())
		default:
			log.Printf("❌ AddCard: %v", err)
			c.renderPage(w, http.StatusInternalServerError, "", "Failed to add student")
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ClearCards handles POST /cards/clear
func (c *CardController) ClearCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ ClearCards: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.cards.Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleMirror handles POST /mirror/toggle
func (c *CardController) ToggleMirror(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ ToggleMirror: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.cards.ToggleMirror()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UploadPhoto handles POST /photo (multipart field "photo")
func (c *CardController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ UploadPhoto: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		log.Printf("❌ UploadPhoto: Error parsing multipart form: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", "Photo is too large or the upload is malformed")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		log.Printf("❌ UploadPhoto: photo field is required: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", "photo field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ UploadPhoto: Error reading %s: %v", header.Filename, err)
		c.renderPage(w, http.StatusBadRequest, "", "Failed to read photo")
		return
	}

	if err := <-c.form.StagePhoto(data); err != nil {
		log.Printf("⚠️  UploadPhoto: %s could not be decoded: %v", header.Filename, err)
		c.renderPage(w, http.StatusBadRequest, "", "Photo could not be read as an image")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SetGeometry handles POST /sheet/geometry (form fields widthMM, heightMM)
func (c *CardController) SetGeometry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ SetGeometry: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("❌ SetGeometry: Error parsing form: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", "Invalid form data")
		return
	}

	width, errW := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("widthMM")), 64)
	height, errH := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("heightMM")), 64)
	if errW != nil || errH != nil {
		log.Printf("❌ SetGeometry: Invalid dimensions: %q x %q", r.PostFormValue("widthMM"), r.PostFormValue("heightMM"))
		c.renderPage(w, http.StatusBadRequest, "", "widthMM and heightMM must be numbers")
		return
	}

	if err := c.renderer.SetGeometry(models.CardGeometry{WidthMM: width, HeightMM: height}); err != nil {
		log.Printf("❌ SetGeometry: %v", err)
		c.renderPage(w, http.StatusBadRequest, "", err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPage writes the main page with the current session state
func (c *CardController) renderPage(w http.ResponseWriter, status int, message, errMsg string) {
	renderPage(w, c.renderer, c.cards, c.form, status, message, errMsg)
}

func renderPage(w http.ResponseWriter, renderer *service.SheetRenderer, cards service.CardServiceInterface,
	form *service.FormSession, status int, message, errMsg string) {
	state := service.PageState{
		Records:     cards.Records(),
		Mirrored:    cards.Mirrored(),
		StagedPhoto: form.StagedPhoto(),
		Message:     message,
		Error:       errMsg,
	}

	var buf strings.Builder
	if err := renderer.RenderPage(&buf, state); err != nil {
		log.Printf("❌ renderPage: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, buf.String()); err != nil {
		log.Printf("❌ renderPage: Error writing response: %v", err)
	}
}
