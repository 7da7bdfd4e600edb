package config

import (
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"idcard-sheet/models"
)

// Config holds the process settings
type Config struct {
	Port        string
	Environment string
	BaseURL     string
	// Print output
	ChromePath  string
	PDFPageSize string
	// Card content
	School   models.SchoolInfo
	Geometry models.CardGeometry
	// Artwork
	ArtworkDir              string
	ArtworkCacheDir         string
	GoogleCredentialsPath   string
	ArtworkLogoDriveID      string
	ArtworkSignatureDriveID string
}

// Load reads .env (outside production) and the environment
func Load() *Config {
	environment := getEnv("ENV", "development")
	if environment != "production" {
		// Overload so .env values win over the shell during development
		if err := godotenv.Overload(); err != nil {
			log.Println("No .env file found, using system environment variables")
		} else {
			log.Println("✓ Loaded environment variables from .env")
		}
	}

	port := strings.TrimPrefix(getEnv("PORT", "8080"), ":")

	defaultGeometry := models.DefaultCardGeometry()

	return &Config{
		Port:        port,
		Environment: environment,
		BaseURL:     getEnv("BASE_URL", "http://localhost:"+port),
		ChromePath:  getEnv("CHROME_PATH", ""),
		PDFPageSize: getEnv("PDF_PAGE_SIZE", "A4"),
		School: models.SchoolInfo{
			Name:      getEnv("SCHOOL_NAME", "Quaid-e-Azam Public Sec School"),
			ShortName: getEnv("SCHOOL_SHORT_NAME", "QUAIDIAN"),
			Address:   getEnv("SCHOOL_ADDRESS", "PLOT NO # 22/STREET NO # 11, QAYYUMABAD KARACHI"),
			Phone:     getEnv("SCHOOL_PHONE", "0308-2322242"),
			Rules:     getEnvList("CARD_RULES", "Card is required to enter school.|Display of card is mandatory."),
		},
		Geometry: models.CardGeometry{
			WidthMM:  getEnvFloat("CARD_WIDTH_MM", defaultGeometry.WidthMM),
			HeightMM: getEnvFloat("CARD_HEIGHT_MM", defaultGeometry.HeightMM),
		},
		ArtworkDir:              getEnv("ARTWORK_DIR", "static/artwork"),
		ArtworkCacheDir:         getEnv("ARTWORK_CACHE_DIR", "cache/artwork"),
		GoogleCredentialsPath:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ArtworkLogoDriveID:      getEnv("ARTWORK_LOGO_DRIVE_ID", ""),
		ArtworkSignatureDriveID: getEnv("ARTWORK_SIGNATURE_DRIVE_ID", ""),
	}
}

// DriveArtworkEnabled reports whether artwork should be fetched from Google Drive
func (c *Config) DriveArtworkEnabled() bool {
	return c.GoogleCredentialsPath != "" && (c.ArtworkLogoDriveID != "" || c.ArtworkSignatureDriveID != "")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		log.Printf("⚠️  Invalid value for %s: %q, using %g", key, value, defaultValue)
		return defaultValue
	}
	return f
}

// getEnvList splits a "|" separated value
func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
