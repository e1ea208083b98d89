package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"cineview/api"
	"cineview/config"
	"cineview/handlers"
	"cineview/internal/database"
	"cineview/services/accounts"
	"cineview/services/comments"
	"cineview/services/history"
	"cineview/services/metadata"
	"cineview/services/players"
	"cineview/services/sessions"
	"cineview/services/watchlist"
)

func main() {
	configFlag := flag.String("config", "", "path to settings.json")
	portOverride := flag.Int("port", 0, "override server port")
	flag.Parse()

	// .env is optional, used in development
	_ = godotenv.Load()

	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv("CINEVIEW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// File logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}
	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		settings.Metadata.TMDBAPIKey = key
	}

	db, err := database.Open(settings.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	historyRepo := database.NewHistoryRepository(db)
	watchlistRepo := database.NewWatchlistRepository(db)
	commentRepo := database.NewCommentRepository(db)
	accountRepo := database.NewAccountRepository(db)
	sessionRepo := database.NewSessionRepository(db)

	metadataSvc := metadata.NewService(settings.Metadata.TMDBAPIKey, settings.Metadata.Language, settings.Cache.MetadataTTLHours)
	if !metadataSvc.IsConfigured() {
		log.Println("Warning: TMDB API key not configured, metadata lookups are disabled")
	}

	historySvc := history.NewService(historyRepo, metadataSvc, time.Duration(settings.History.SnapshotRefreshHours)*time.Hour)
	watchlistSvc := watchlist.NewService(watchlistRepo)
	commentsSvc := comments.NewService(commentRepo)
	accountsSvc := accounts.NewService(accountRepo)
	sessionsSvc := sessions.NewService(sessionRepo, time.Duration(settings.Sessions.TTLDays)*24*time.Hour)
	playersSvc := players.NewService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if generated, created, err := accountsSvc.EnsureAdmin(ctx); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	} else if created {
		fmt.Printf("Created admin account, password: %s\n", generated)
	}

	// Expired sessions are swept hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessionsSvc.PurgeExpired(ctx)
			}
		}
	}()

	auth := handlers.NewAuthenticator(sessionsSvc)
	r := mux.NewRouter()
	api.Register(
		r,
		handlers.NewAuthHandler(accountsSvc, sessionsSvc, auth),
		handlers.NewHistoryHandler(historySvc, auth),
		handlers.NewWatchlistHandler(watchlistSvc, auth),
		handlers.NewCommentsHandler(commentsSvc, auth),
		handlers.NewMetadataHandler(metadataSvc),
		handlers.NewPlayersHandler(playersSvc, historySvc, auth),
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Shutdown complete")
}
