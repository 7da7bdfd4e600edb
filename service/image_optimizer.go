package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	// Registered for image.Decode
	_ "image/gif"

	"github.com/disintegration/imaging"
)

const (
	// Portrait photos are shown in an 80px circle, kept at 3x for print
	portraitSize    = 240
	portraitQuality = 85
	// Logo and signature keep transparency, bounded by their largest dimension
	maxArtworkSize = 400
)

// Image presets
const (
	PresetPortrait = "portrait"
	PresetArtwork  = "artwork"
)

// OptimizedImage is an encoded image ready to embed
type OptimizedImage struct {
	Data     []byte
	MimeType string
}

// DataURI returns the image as a base64 data URI
func (img OptimizedImage) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data))
}

// OptimizeImage decodes raw image bytes (PNG, JPEG, GIF) and re-encodes them for a card.
// portrait: center-cropped square JPEG. artwork: PNG bounded to maxArtworkSize.
func OptimizeImage(imageData []byte, preset string) (OptimizedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return OptimizedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var buf bytes.Buffer
	switch preset {
	case PresetArtwork:
		resized := fitWithin(img, maxArtworkSize)
		if err := png.Encode(&buf, resized); err != nil {
			return OptimizedImage{}, fmt.Errorf("failed to encode to PNG: %w", err)
		}
		return OptimizedImage{Data: buf.Bytes(), MimeType: "image/png"}, nil

	default:
		if preset != PresetPortrait {
			log.Printf("⚠️  Unknown preset '%s', defaulting to portrait", preset)
		}
		square := imaging.Fill(img, portraitSize, portraitSize, imaging.Center, imaging.Lanczos)
		if err := jpeg.Encode(&buf, square, &jpeg.Options{Quality: portraitQuality}); err != nil {
			return OptimizedImage{}, fmt.Errorf("failed to encode to JPEG: %w", err)
		}
		log.Printf("✓ Portrait optimized: %dx%d, output_size=%d bytes", portraitSize, portraitSize, buf.Len())
		return OptimizedImage{Data: buf.Bytes(), MimeType: "image/jpeg"}, nil
	}
}

// fitWithin scales img down so neither side exceeds maxDim, keeping the aspect ratio
func fitWithin(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return img
	}

	log.Printf("🔄 Resizing image: %dx%d to fit %dpx", width, height, maxDim)
	if width > height {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}

// cachePath returns the cache file path for a cached artwork file
func cachePath(cacheDir, key string) string {
	return filepath.Join(cacheDir, fmt.Sprintf("artwork_%s.png", key))
}

// readFromCache reads a cached image, reporting whether it exists
func readFromCache(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// saveToCache saves an image to the cache
func saveToCache(path string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", path)
	return nil
}
