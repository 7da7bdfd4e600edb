package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"idcard-sheet/models"
	"idcard-sheet/repository"
)

// pngBytes encodes a solid w x h PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: 120, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestCardService() *CardService {
	return NewCardService(repository.NewCardListRepository())
}

func student(name string) models.StudentRecord {
	return models.StudentRecord{
		Name:               name,
		FatherName:         "Father of " + name,
		ClassName:          "VIII-B",
		RegistrationNumber: "1042",
	}
}

func testSchool() models.SchoolInfo {
	return models.SchoolInfo{
		Name:      "Quaid-e-Azam Public Sec School",
		ShortName: "QUAIDIAN",
		Address:   "PLOT NO # 22/STREET NO # 11, QAYYUMABAD KARACHI",
		Phone:     "0308-2322242",
		Rules:     []string{"Card is required to enter school."},
	}
}
