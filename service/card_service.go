package service

import (
	"log"
	"sync"

	"idcard-sheet/models"
	"idcard-sheet/repository"
)

// CardService handles the session card list and the mirror flag
// Implements CardServiceInterface
type CardService struct {
	repository repository.CardListRepositoryInterface

	mu       sync.RWMutex
	mirrored bool
}

// NewCardService creates a new CardService in normal (not mirrored) mode
func NewCardService(repo repository.CardListRepositoryInterface) *CardService {
	return &CardService{
		repository: repo,
	}
}

// Ensure CardService implements CardServiceInterface
var _ CardServiceInterface = (*CardService)(nil)

// Add appends a record to the sheet and returns its position.
// On a full sheet nothing changes and the error wraps repository.ErrCapacityExceeded.
func (s *CardService) Add(record models.StudentRecord) (int, error) {
	pos, err := s.repository.Append(record)
	if err != nil {
		return -1, err
	}
	log.Printf("✅ Card added at position %d (%d/%d)", pos, s.repository.Len(), s.repository.Capacity())
	return pos, nil
}

// Clear empties the sheet. The mirror flag is left as is.
func (s *CardService) Clear() {
	s.repository.Clear()
	log.Printf("🧹 Card list cleared")
}

// ToggleMirror flips the mirror flag and returns the new value
func (s *CardService) ToggleMirror() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirrored = !s.mirrored
	log.Printf("🔄 Mirror mode: %v", s.mirrored)
	return s.mirrored
}

// Mirrored returns the mirror flag
func (s *CardService) Mirrored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mirrored
}

// Records returns the records in insertion order
func (s *CardService) Records() []models.StudentRecord {
	return s.repository.List()
}

// Remaining returns how many more cards fit on the sheet
func (s *CardService) Remaining() int {
	return s.repository.Capacity() - s.repository.Len()
}
