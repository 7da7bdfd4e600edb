package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"idcard-sheet/models"
	"idcard-sheet/utils"
)

// ErrMissingFields is returned when a required form field is empty
var ErrMissingFields = errors.New("required fields are missing")

// Form field labels in display order
var studentFieldLabels = []string{"Name", "Father", "Class", "GR #"}

// FormSession holds the state of the add-student form: the staged photo
// that will be attached to the next submitted record.
type FormSession struct {
	cards  CardServiceInterface
	decode func(data []byte) (OptimizedImage, error)

	mu     sync.Mutex
	staged string // data URI of the staged photo
}

// NewFormSession creates a form session that adds records through cards
func NewFormSession(cards CardServiceInterface) *FormSession {
	return &FormSession{
		cards:  cards,
		decode: decodePortrait,
	}
}

// StagePhoto decodes fileData in the background and stores it as the staged photo.
// The returned channel yields the decode error (nil on success) and is then closed.
// When several stagings overlap, the last one to finish wins.
// A file that fails to decode leaves no photo staged.
func (f *FormSession) StagePhoto(fileData []byte) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)

		img, err := f.decode(fileData)

		f.mu.Lock()
		if err != nil {
			f.staged = ""
		} else {
			f.staged = img.DataURI()
		}
		f.mu.Unlock()

		if err != nil {
			log.Printf("❌ StagePhoto: %v", err)
			done <- fmt.Errorf("failed to stage photo: %w", err)
			return
		}
		done <- nil
	}()
	return done
}

func decodePortrait(data []byte) (OptimizedImage, error) {
	return OptimizeImage(data, PresetPortrait)
}

// StagedPhoto returns the staged photo data URI, empty when none
func (f *FormSession) StagedPhoto() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staged
}

// DiscardPhoto drops the staged photo
func (f *FormSession) DiscardPhoto() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = ""
}

// Submit builds a record from the form fields and the staged photo and adds it.
// On success the staged photo is cleared so the next entry starts empty.
func (f *FormSession) Submit(input models.StudentInput) (int, error) {
	record, err := BuildRecord(input, f.StagedPhoto())
	if err != nil {
		return -1, err
	}

	pos, err := f.cards.Add(record)
	if err != nil {
		return -1, err
	}

	f.DiscardPhoto()
	return pos, nil
}

// BuildRecord cleans the input fields and checks they are present
func BuildRecord(input models.StudentInput, photo string) (models.StudentRecord, error) {
	record := models.StudentRecord{
		Name:               utils.CleanField(input.Name),
		FatherName:         utils.CleanField(input.FatherName),
		ClassName:          utils.CleanField(input.ClassName),
		RegistrationNumber: utils.CleanField(input.RegistrationNumber),
		Photo:              photo,
	}

	missing := utils.MissingFields(map[string]string{
		"Name":   record.Name,
		"Father": record.FatherName,
		"Class":  record.ClassName,
		"GR #":   record.RegistrationNumber,
	}, studentFieldLabels)
	if len(missing) > 0 {
		return models.StudentRecord{}, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	return record, nil
}
