package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/turtlefin/turtle-finance/internal/api/handlers"
	"github.com/turtlefin/turtle-finance/internal/api/middleware"
	"github.com/turtlefin/turtle-finance/internal/auth"
	"github.com/turtlefin/turtle-finance/internal/logger"
	"github.com/turtlefin/turtle-finance/internal/prefs"
	"github.com/turtlefin/turtle-finance/internal/sheetsync"
)

func main() {
	// Parse command-line flags; .env values fill in unset environment vars.
	_ = godotenv.Load()

	var (
		port         = flag.String("port", envOr("PORT", "8080"), "HTTP server port")
		dataDir      = flag.String("data-dir", envOr("TURTLE_DATA_DIR", defaultDataDir()), "Directory for preferences and the OAuth token")
		clientSecret = flag.String("client-secret", envOr("GOOGLE_CLIENT_SECRET_FILE", ""), "Path to the Google OAuth client secret JSON")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	if *clientSecret == "" {
		log.Fatal().Msg("No OAuth client secret configured - set -client-secret or GOOGLE_CLIENT_SECRET_FILE")
	}
	secretJSON, err := os.ReadFile(*clientSecret)
	if err != nil {
		log.Fatal().Err(err).Str("path", *clientSecret).Msg("Failed to read client secret")
	}

	store, err := prefs.Open(filepath.Join(*dataDir, "preferences.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open preference store")
	}

	session, err := auth.NewManager(secretJSON, filepath.Join(*dataDir, "token.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OAuth manager")
	}

	synchronizer := sheetsync.New(auth.NewSheetService(session), session, store)

	recordsHandler := handlers.NewRecordsHandler(synchronizer, store, log)
	settingsHandler := handlers.NewSettingsHandler(store, session, log)

	// Create router
	mux := http.NewServeMux()

	// Records endpoints
	mux.HandleFunc("GET /api/records/{kind}", recordsHandler.List)
	mux.HandleFunc("POST /api/records/{kind}", recordsHandler.Create)
	mux.HandleFunc("DELETE /api/records/{kind}/{id}", recordsHandler.Delete)
	mux.HandleFunc("GET /api/records/{kind}/summary", recordsHandler.Summary)

	// Spreadsheet endpoints
	mux.HandleFunc("POST /api/spreadsheets", recordsHandler.CreateSpreadsheet)
	mux.HandleFunc("POST /api/repair", recordsHandler.Repair)

	// Preference endpoints
	mux.HandleFunc("GET /api/preferences", settingsHandler.GetPreferences)
	mux.HandleFunc("PUT /api/preferences", settingsHandler.UpdatePreferences)
	mux.HandleFunc("GET /api/categories/{kind}", settingsHandler.ListCategories)
	mux.HandleFunc("POST /api/categories/{kind}", settingsHandler.AddCategory)
	mux.HandleFunc("DELETE /api/categories/{kind}/{name}", settingsHandler.RemoveCategory)

	// Bank account and card endpoints
	mux.HandleFunc("GET /api/accounts", settingsHandler.ListAccounts)
	mux.HandleFunc("POST /api/accounts", settingsHandler.AddAccount)
	mux.HandleFunc("PUT /api/accounts/{id}", settingsHandler.UpdateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", settingsHandler.RemoveAccount)
	mux.HandleFunc("GET /api/cards", settingsHandler.ListCards)
	mux.HandleFunc("POST /api/cards", settingsHandler.AddCard)
	mux.HandleFunc("DELETE /api/cards/{id}", settingsHandler.RemoveCard)
	mux.HandleFunc("GET /api/banks", settingsHandler.ListBanks)

	// Session endpoints
	mux.HandleFunc("GET /api/session", settingsHandler.GetSession)
	mux.HandleFunc("GET /api/session/auth-url", settingsHandler.AuthURL)
	mux.HandleFunc("GET /api/session/callback", settingsHandler.AuthCallback)
	mux.HandleFunc("POST /api/session/signout", settingsHandler.SignOut)

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware. RequestID sits outside Logger so the logged request
	// already carries the ID.
	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".turtle-finance"
	}
	return filepath.Join(home, ".turtle-finance")
}
