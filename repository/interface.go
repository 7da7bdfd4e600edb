package repository

import "idcard-sheet/models"

// CardListRepositoryInterface defines the contract for the session card list
type CardListRepositoryInterface interface {
	Append(record models.StudentRecord) (int, error)
	Clear()
	List() []models.StudentRecord
	Len() int
	Capacity() int
}
