package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"idcard-sheet/models"
)

// Artwork file names, without extension
const (
	artworkLogo      = "logo"
	artworkSignature = "signature"
)

// ArtworkConfig tells the ArtworkService where the artwork lives
type ArtworkConfig struct {
	Dir              string // local directory with logo.* and signature.*
	CacheDir         string // cache for images downloaded from Drive
	LogoDriveID      string
	SignatureDriveID string
}

// ArtworkService loads the logo and signature images printed on the card back
// Implements ArtworkServiceInterface
type ArtworkService struct {
	cfg          ArtworkConfig
	driveService DriveServiceInterface // nil when Drive is not configured

	mu      sync.RWMutex
	current models.Artwork
}

// NewArtworkService creates a new ArtworkService. driveService may be nil.
func NewArtworkService(cfg ArtworkConfig, driveService DriveServiceInterface) *ArtworkService {
	return &ArtworkService{
		cfg:          cfg,
		driveService: driveService,
	}
}

// Ensure ArtworkService implements ArtworkServiceInterface
var _ ArtworkServiceInterface = (*ArtworkService)(nil)

// Load resolves both images as data URIs and keeps them for Current.
// A missing image is logged and left empty; the error only reports that something is missing.
func (s *ArtworkService) Load(ctx context.Context) (models.Artwork, error) {
	var missing []string

	logo, err := s.resolve(ctx, artworkLogo, s.cfg.LogoDriveID)
	if err != nil {
		log.Printf("⚠️  Logo unavailable: %v", err)
		missing = append(missing, artworkLogo)
	}
	signature, err := s.resolve(ctx, artworkSignature, s.cfg.SignatureDriveID)
	if err != nil {
		log.Printf("⚠️  Signature unavailable: %v", err)
		missing = append(missing, artworkSignature)
	}

	artwork := models.Artwork{LogoURI: logo, SignatureURI: signature}

	s.mu.Lock()
	s.current = artwork
	s.mu.Unlock()

	if len(missing) > 0 {
		return artwork, fmt.Errorf("artwork not found: %v", missing)
	}
	log.Printf("✓ Artwork loaded")
	return artwork, nil
}

// Current returns the last loaded artwork
func (s *ArtworkService) Current() models.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// resolve tries Drive first (through the disk cache), then the local directory
func (s *ArtworkService) resolve(ctx context.Context, name, driveID string) (string, error) {
	if driveID != "" && s.driveService != nil {
		uri, err := s.fromDrive(ctx, driveID)
		if err == nil {
			return uri, nil
		}
		log.Printf("⚠️  Drive artwork %s failed, falling back to local file: %v", name, err)
	}
	return s.fromDir(name)
}

func (s *ArtworkService) fromDrive(ctx context.Context, fileID string) (string, error) {
	path := cachePath(s.cfg.CacheDir, fileID)
	if s.cfg.CacheDir != "" {
		if data, ok := readFromCache(path); ok {
			return OptimizedImage{Data: data, MimeType: "image/png"}.DataURI(), nil
		}
	}

	raw, err := s.driveService.DownloadImage(ctx, fileID)
	if err != nil {
		return "", err
	}
	img, err := OptimizeImage(raw, PresetArtwork)
	if err != nil {
		return "", err
	}
	if s.cfg.CacheDir != "" {
		if err := saveToCache(path, img.Data); err != nil {
			log.Printf("⚠️  %v", err)
		}
	}
	return img.DataURI(), nil
}

// fromDir loads name.png, name.jpg or name.jpeg from the artwork directory as-is
func (s *ArtworkService) fromDir(name string) (string, error) {
	mimeTypes := map[string]string{
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(s.cfg.Dir, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return fmt.Sprintf("data:%s;base64,%s", mimeTypes[ext], base64.StdEncoding.EncodeToString(data)), nil
	}
	return "", fmt.Errorf("static asset not found: %s in %s", name, s.cfg.Dir)
}
