package service

import (
	"context"

	"idcard-sheet/models"
)

// ArtworkServiceInterface defines the contract for the static card artwork
type ArtworkServiceInterface interface {
	Load(ctx context.Context) (models.Artwork, error)
	Current() models.Artwork
}
