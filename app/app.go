package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"idcard-sheet/app/controller"
	"idcard-sheet/app/router"
	"idcard-sheet/config"
	"idcard-sheet/repository"
	"idcard-sheet/service"
)

// staticDir is served under /static/
const staticDir = "static"

// App holds the wired HTTP handler and the resources to release on shutdown
type App struct {
	Handler  http.Handler
	renderer *service.SheetRenderer
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize Drive service when artwork comes from Drive
	var driveService service.DriveServiceInterface
	if cfg.DriveArtworkEnabled() {
		ds, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			return nil, err
		}
		driveService = ds
	}

	// Load the static card artwork
	artworkService := service.NewArtworkService(service.ArtworkConfig{
		Dir:              cfg.ArtworkDir,
		CacheDir:         cfg.ArtworkCacheDir,
		LogoDriveID:      cfg.ArtworkLogoDriveID,
		SignatureDriveID: cfg.ArtworkSignatureDriveID,
	}, driveService)
	if _, err := artworkService.Load(ctx); err != nil {
		log.Printf("⚠️  Artwork incomplete, cards render without it: %v", err)
	}

	// Initialize repository
	cardRepo := repository.NewCardListRepository()

	// Initialize services
	cardService := service.NewCardService(cardRepo)
	formSession := service.NewFormSession(cardService)
	importService := service.NewRosterImportService(cardService)
	pdfService := service.NewPDFService(service.PDFOptions{
		PageSize:  cfg.PDFPageSize,
		MarginMM:  5,
		ChromeExe: cfg.ChromePath,
	})

	renderer, err := service.NewSheetRenderer(cfg.School, cfg.Geometry, artworkService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheet renderer: %w", err)
	}

	// Create controllers
	controllers := &router.Controllers{
		Card:   controller.NewCardController(cardService, formSession, renderer),
		Sheet:  controller.NewSheetController(cardService, renderer, pdfService),
		Import: controller.NewImportController(importService, cardService, formSession, renderer),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers, staticDir)

	return &App{Handler: mux, renderer: renderer}, nil
}

// Close releases the renderer fonts and mounted card views
func (a *App) Close() {
	a.renderer.Close()
}
