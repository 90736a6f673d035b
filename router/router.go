package router

import (
	"database/sql"
	"net/http"

	"sintesi/internal/ai"
	handler "sintesi/internal/summary"
	"sintesi/internal/summary/repository"
	"sintesi/internal/summary/service"
	"sintesi/middleware"
	"sintesi/socket"
)

func Setup(db *sql.DB, hub *socket.Hub, aiClient *ai.Client) http.Handler {
	mux := http.NewServeMux()

	// WebSocket: one room per authenticated owner, coarse refresh signals.
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r, middleware.OwnerID(r))
	})
	mux.Handle("/ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	summaryRepo := repository.NewSummaryRepository(db)
	summaryService := service.NewSummaryService(summaryRepo, aiClient, hub)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	auth := middleware.AuthMiddleware

	mux.Handle("/api/summaries/create", auth(http.HandlerFunc(summaryHandler.CreateSummary)))
	mux.Handle("/api/summaries/delete", auth(http.HandlerFunc(summaryHandler.DeleteSummary)))
	mux.Handle("/api/summaries/get", auth(http.HandlerFunc(summaryHandler.GetSummary)))
	mux.Handle("/api/summaries/outline", auth(http.HandlerFunc(summaryHandler.GetOutline)))
	mux.Handle("/api/summaries", auth(http.HandlerFunc(summaryHandler.GetSummaries)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return middleware.CORSMiddleware(mux)
}
