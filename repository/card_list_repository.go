package repository

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"idcard-sheet/models"
)

// ErrCapacityExceeded is returned when a record is added to a full sheet
var ErrCapacityExceeded = errors.New("sheet is full")

// CardListRepository holds the ordered, capacity-bounded list of records for the session.
// Implements CardListRepositoryInterface
type CardListRepository struct {
	mu       sync.RWMutex
	records  []models.StudentRecord
	capacity int
}

// NewCardListRepository creates an empty list holding at most models.SheetCapacity records
func NewCardListRepository() *CardListRepository {
	return &CardListRepository{
		records:  make([]models.StudentRecord, 0, models.SheetCapacity),
		capacity: models.SheetCapacity,
	}
}

// Ensure CardListRepository implements CardListRepositoryInterface
var _ CardListRepositoryInterface = (*CardListRepository)(nil)

// Append adds a record at the end of the list and returns its position.
// A full list is left unchanged and ErrCapacityExceeded is returned.
func (r *CardListRepository) Append(record models.StudentRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) >= r.capacity {
		log.Printf("❌ Append rejected: %d/%d cards on sheet", len(r.records), r.capacity)
		return -1, fmt.Errorf("max %d students per page: %w", r.capacity, ErrCapacityExceeded)
	}

	r.records = append(r.records, record)
	return len(r.records) - 1, nil
}

// Clear empties the list
func (r *CardListRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = r.records[:0]
}

// List returns a copy of the records in insertion order
func (r *CardListRepository) List() []models.StudentRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StudentRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records
func (r *CardListRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Capacity returns the maximum number of records
func (r *CardListRepository) Capacity() int {
	return r.capacity
}
