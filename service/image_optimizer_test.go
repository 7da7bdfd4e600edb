package service

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeImage_Portrait(t *testing.T) {
	img, err := OptimizeImage(pngBytes(t, 600, 300), PresetPortrait)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MimeType)

	decoded, format, err := image.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, portraitSize, decoded.Bounds().Dx())
	assert.Equal(t, portraitSize, decoded.Bounds().Dy())
}

func TestOptimizeImage_Artwork(t *testing.T) {
	img, err := OptimizeImage(pngBytes(t, 800, 200), PresetArtwork)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MimeType)

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, maxArtworkSize, decoded.Bounds().Dx())
	assert.Equal(t, 100, decoded.Bounds().Dy())

	small, err := OptimizeImage(pngBytes(t, 120, 40), PresetArtwork)
	require.NoError(t, err)
	decoded, _, err = image.Decode(bytes.NewReader(small.Data))
	require.NoError(t, err)
	assert.Equal(t, 120, decoded.Bounds().Dx())
}

func TestOptimizeImage_Invalid(t *testing.T) {
	_, err := OptimizeImage([]byte("definitely not an image"), PresetPortrait)
	assert.Error(t, err)
}

func TestOptimizedImage_DataURI(t *testing.T) {
	uri := OptimizedImage{Data: []byte("abc"), MimeType: "image/png"}.DataURI()
	assert.Equal(t, "data:image/png;base64,YWJj", uri)
}

func TestCache(t *testing.T) {
	path := cachePath(filepath.Join(t.TempDir(), "nested"), "file123")
	assert.True(t, strings.HasSuffix(path, "artwork_file123.png"))

	_, ok := readFromCache(path)
	assert.False(t, ok)

	require.NoError(t, saveToCache(path, []byte("png")))
	data, ok := readFromCache(path)
	assert.True(t, ok)
	assert.Equal(t, []byte("png"), data)
}
