package router

import (
	"net/http"

	"idcard-sheet/app/controller"
)

type Controllers struct {
	Card   *controller.CardController
	Sheet  *controller.SheetController
	Import *controller.ImportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on mux. staticDir is served under /static/.
func SetupRoutes(mux *http.ServeMux, controllers *Controllers, staticDir string) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Sheet page
	mux.HandleFunc("/", controllers.Card.Index)

	// Card list
	mux.HandleFunc("/cards", controllers.Card.AddCard)
	mux.HandleFunc("/cards/clear", controllers.Card.ClearCards)

	// Roster import
	mux.HandleFunc("/cards/import", controllers.Import.ImportRoster)
	mux.HandleFunc("/cards/import/template", controllers.Import.DownloadTemplate)

	// Form photo and mirror toggle
	mux.HandleFunc("/photo", controllers.Card.UploadPhoto)
	mux.HandleFunc("/mirror/toggle", controllers.Card.ToggleMirror)

	// Print output
	mux.HandleFunc("/sheet", controllers.Sheet.GenerateSheet)
	mux.HandleFunc("/sheet/export", controllers.Sheet.DownloadExport)
	mux.HandleFunc("/sheet/geometry", controllers.Card.SetGeometry)

	// Static artwork
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
}
