package service

import "idcard-sheet/models"

// CardServiceInterface defines the contract for card list and mirror operations
type CardServiceInterface interface {
	Add(record models.StudentRecord) (int, error)
	Clear()
	ToggleMirror() bool
	Mirrored() bool
	Records() []models.StudentRecord
	Remaining() int
}
