package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musicapp/cache"
	"musicapp/config"
	"musicapp/core/catalog"
	"musicapp/core/seed"
	"musicapp/db"
	"musicapp/logger"
	"musicapp/repository"
	"musicapp/storage"

	"github.com/gorilla/mux"
)

// NewRouter wires the catalog API, the landing page and the audio assets.
func NewRouter(cfg *config.Config, svc *catalog.Service, audioStore storage.AudioStore) http.Handler {
	router := mux.NewRouter()

	router.Use(requestLogger)
	router.Use(corsMiddleware)
	if cfg.RateLimitRPS > 0 {
		router.Use(rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	h := NewCatalogHandler(svc)

	// OPTIONS is listed so that preflight requests match and reach corsMiddleware.
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/artists", h.ListArtistsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/playlists/for-you", h.ForYouPlaylistsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/track/{id}", h.GetTrackHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/playlist/{id}/tracks", h.PlaylistTracksHandler).Methods(http.MethodGet, http.MethodOptions)
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody)
	})
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	router.Handle("/static/audio/{name}", NewStaticHandler(audioStore)).Methods(http.MethodGet, http.MethodHead, http.MethodOptions)
	router.HandleFunc("/", IndexHandler).Methods(http.MethodGet)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	return router
}

// Start opens the store, seeds it if empty and serves HTTP until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	ctx := context.Background()

	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	repo := repository.NewGormCatalogRepository(gdb)

	// 必须在开始监听之前完成初始化数据
	if _, err := seed.Run(ctx, repo); err != nil {
		return err
	}

	var responseCache cache.Cache = cache.NopCache{}
	if cfg.CacheEnabled() {
		client, err := cache.ConnectRedis(ctx, cfg)
		if err != nil {
			logger.Warn("Redis unavailable, serving without response cache", logger.ErrorField(err))
		} else {
			rc := cache.NewRedisCache(client)
			defer rc.Close()
			responseCache = rc
		}
	}

	audioStore, err := storage.NewAudioStore(ctx, cfg)
	if err != nil {
		return err
	}

	svc := catalog.NewService(repo, responseCache, catalog.Options{
		PlaylistImageTemplate: cfg.PlaylistImageTemplate,
		AlbumArtTemplate:      cfg.AlbumArtTemplate,
		CacheTTL:              cfg.CacheTTL,
	})

	// 设置服务器超时
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewRouter(cfg, svc, audioStore),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			logger.String("addr", cfg.HTTPAddr),
			logger.String("db_driver", cfg.DBDriver),
			logger.Bool("cache", cfg.CacheEnabled()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
