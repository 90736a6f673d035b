package main

import (
	"net/http"
	"os"

	"sintesi/config/database"
	"sintesi/internal/ai"
	"sintesi/pkg/logger"
	"sintesi/router"
	"sintesi/socket"

	"github.com/joho/godotenv"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	// Load environment variables from a .env file if present.
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	db := database.Connect()
	defer db.Close()

	// The hub pushes "re-fetch your list" signals to connected clients.
	hub := socket.NewHub()
	go hub.Run()

	aiClient := ai.NewClient(
		os.Getenv("AI_GATEWAY_KEY"),
		os.Getenv("AI_MODEL"),
		os.Getenv("AI_GATEWAY_URL"),
	)

	mux := router.Setup(db, hub, aiClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Sugar.Infof("Backend listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
