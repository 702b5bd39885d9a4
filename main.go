package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	artistdb "ms-booking/internal/artist/db"
	showdb "ms-booking/internal/show/db"
	venuedb "ms-booking/internal/venue/db"

	"ms-booking/internal/artist"
	"ms-booking/internal/artist/artist_api"
	"ms-booking/internal/config"
	"ms-booking/internal/database"
	"ms-booking/internal/database/migrations"
	"ms-booking/internal/genre"
	"ms-booking/internal/logger"
	"ms-booking/internal/show"
	"ms-booking/internal/show/show_api"
	"ms-booking/internal/venue"
	"ms-booking/internal/venue/venue_api"
	"ms-booking/internal/web"
)

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting booking directory")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if database.IsPostgres(cfg.Database.URL) {
			opts := migrations.DefaultOptions()
			opts.MigrationsDir = cfg.Database.MigrationsDir
			runner := migrations.NewRunner(db, opts)
			if err := runner.MigrateUp(); err != nil {
				log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
			}
		} else {
			if err := migrations.Bootstrap(ctx, db); err != nil {
				log.Fatal("DATABASE", fmt.Sprintf("Schema bootstrap failed: %v", err))
			}
		}
		log.Info("DATABASE", "Schema is up to date")
	}

	renderer, err := web.NewRenderer(log, cfg.SecretKey)
	if err != nil {
		log.Fatal("RENDER", fmt.Sprintf("Failed to build renderer: %v", err))
	}

	genreStore := &genre.Store{Bun: db}
	venueService := venue.NewService(&venuedb.DB{Bun: db})
	artistService := artist.NewService(&artistdb.DB{Bun: db})
	showService := show.NewService(&showdb.DB{Bun: db})

	venueHandler := &venue_api.Handler{
		VenueService: venueService,
		Genres:       genreStore,
		Renderer:     renderer,
		Logger:       log,
	}
	artistHandler := &artist_api.Handler{
		ArtistService: artistService,
		Genres:        genreStore,
		Renderer:      renderer,
		Logger:        log,
	}
	showHandler := &show_api.Handler{
		ShowService: showService,
		Renderer:    renderer,
		Logger:      log,
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(web.RequestLogger(log))
	r.Use(web.Recoverer(log, renderer))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		renderer.HTML(w, r, http.StatusOK, "home.html", nil)
	})

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.List)
		r.Post("/search", venueHandler.Search)
		r.Get("/create", venueHandler.CreateForm)
		r.Post("/create", venueHandler.Create)
		r.Get("/{venueId}", venueHandler.Show)
		r.Delete("/{venueId}", venueHandler.Delete)
		r.Get("/{venueId}/edit", venueHandler.EditForm)
		r.Post("/{venueId}/edit", venueHandler.Edit)
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", artistHandler.List)
		r.Post("/search", artistHandler.Search)
		r.Get("/create", artistHandler.CreateForm)
		r.Post("/create", artistHandler.Create)
		r.Get("/{artistId}", artistHandler.Show)
		r.Get("/{artistId}/edit", artistHandler.EditForm)
		r.Post("/{artistId}/edit", artistHandler.Edit)
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", showHandler.List)
		r.Get("/create", showHandler.CreateForm)
		r.Post("/create", showHandler.Create)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderer.NotFound(w)
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Booking directory running on %s", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Booking directory shutdown complete")
	}
}
