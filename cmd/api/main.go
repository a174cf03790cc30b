package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jpp0ca/MusicRecognition-API/internal/adapters"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/applemusic"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/audd"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/deezer"
	handler "github.com/jpp0ca/MusicRecognition-API/internal/adapters/http"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/spotify"
	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage"
	"github.com/jpp0ca/MusicRecognition-API/internal/app"
	"github.com/jpp0ca/MusicRecognition-API/internal/config"
	"github.com/jpp0ca/MusicRecognition-API/internal/history"

	_ "github.com/jpp0ca/MusicRecognition-API/docs"
)

// @title			MusicRecognition API
// @version		1.0
// @description	API for identifying songs from audio URLs, uploads and microphone recordings.
// @description	Matches are enriched with Apple Music, Spotify and Deezer links and kept in a recent searches list.

// @contact.name	MusicRecognition API Support
// @license.name	MIT

// @host		localhost:8080
// @BasePath	/
func main() {
	cfg := config.Load()
	cfg.ApplyLogLevel()

	if cfg.AuddAPIToken == "" {
		gologging.WarnF("AUDD_API_TOKEN is not set, requests will be rejected by the recognition service")
	}

	// Recent searches storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Open(ctx, cfg)
	cancel()
	if err != nil {
		gologging.FatalF("Failed to open cache backend %s: %v", cfg.CacheBackend, err)
	}
	defer store.Close()

	// Register metadata providers in priority order
	registry := adapters.NewProviderRegistry()
	registry.Register(applemusic.NewProvider())
	registry.Register(spotify.NewProvider())
	registry.Register(deezer.NewProvider())

	// Create application service
	recognizer := audd.NewClient(&http.Client{}, cfg.AuddEndpoint, cfg.AuddAPIToken)
	recognitionService := app.NewService(
		recognizer,
		history.New(store),
		registry,
		app.WithMarket(cfg.Market),
		app.WithReturnMeta(cfg.ReturnMeta),
	)

	// Setup HTTP server
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.Logger())
	h := handler.NewHandler(recognitionService, handler.Options{
		RequestTimeout: cfg.RequestTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	h.RegisterRoutes(r)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := ":" + cfg.Port
	gologging.InfoF("Starting MusicRecognition API on %s", addr)
	gologging.InfoF("Cache backend: %s", cfg.CacheBackend)
	gologging.InfoF("Requested providers: %v", recognitionService.DefaultReturnMeta())
	gologging.InfoF("Swagger UI: http://localhost%s/swagger/index.html", addr)

	if err := r.Run(addr); err != nil {
		gologging.FatalF("Failed to start server: %v", err)
	}
}
