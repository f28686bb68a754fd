// Package server wires the application together: database, catalog
// client, services, handlers, middleware and routes. It is the only
// package that knows about every layer.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/dogmatch/internal/auth"
	"github.com/sakif/dogmatch/internal/config"
	"github.com/sakif/dogmatch/internal/handler"
	"github.com/sakif/dogmatch/internal/middleware"
	"github.com/sakif/dogmatch/internal/notify"
	"github.com/sakif/dogmatch/internal/petfinder"
	sqliteRepo "github.com/sakif/dogmatch/internal/repository/sqlite"
	"github.com/sakif/dogmatch/internal/service"
)

// Server owns the router and the resources that must be released on
// shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// stores, catalog client, services, handlers, routes. Handlers never
// touch the database; services never touch HTTP.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	shelters := sqliteRepo.NewShelterStore(s.db)
	adopters := sqliteRepo.NewAdopterStore(s.db)
	dogs := sqliteRepo.NewDogStore(s.db)
	favorites := sqliteRepo.NewFavoriteStore(s.db)
	breeds := sqliteRepo.NewBreedStore(s.db)

	catalog := petfinder.New(petfinder.Config{
		BaseURL:      s.config.Petfinder.BaseURL,
		ClientID:     s.config.Petfinder.ClientID,
		ClientSecret: s.config.Petfinder.ClientSecret,
	}, breeds, s.logger)

	// Without an SES region, contact mail goes to the log. Useful for
	// local development.
	var sender notify.EmailSender
	if s.config.Email.SESRegion != "" {
		sesSender, err := notify.NewSESSender(context.Background(), s.config.Email.SESRegion, s.config.Email.Sender, s.logger)
		if err != nil {
			return fmt.Errorf("creating SES sender: %w", err)
		}
		sender = sesSender
	} else {
		s.logger.Warn("no SES region configured, contact mail will be logged only")
		sender = notify.NewLogSender(s.logger)
	}

	authSvc := service.NewAuthService(shelters, adopters, tokens, passwords, s.logger)
	shelterSvc := service.NewShelterService(shelters, catalog, passwords, s.logger)
	adopterSvc := service.NewAdopterService(adopters, passwords, s.logger)
	dogSvc := service.NewDogService(dogs, shelters, catalog, s.logger)
	favoriteSvc := service.NewFavoritesService(adopters, favorites, dogs, catalog, s.logger)
	breedSvc := service.NewBreedService(breeds, catalog, s.logger)
	contactSvc := service.NewContactService(shelters, adopters, sender, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	shelterHandler := handler.NewShelterHandler(shelterSvc, contactSvc, s.logger)
	adopterHandler := handler.NewAdopterHandler(adopterSvc, favoriteSvc, s.logger)
	dogHandler := handler.NewDogHandler(dogSvc, s.logger)
	breedHandler := handler.NewBreedHandler(breedSvc, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(auth.Middleware(tokens))

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/shelters/register", authHandler.HandleShelterRegister)
		r.Post("/shelters/login", authHandler.HandleShelterLogin)
		r.Post("/adopters/register", authHandler.HandleAdopterRegister)
		r.Post("/adopters/login", authHandler.HandleAdopterLogin)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/shelters", shelterHandler.HandleList)
		r.Get("/shelters/user/{username}", shelterHandler.HandleGetByUsername)
		r.Get("/shelters/{id}", shelterHandler.HandleGet)
		r.Patch("/shelters/{username}", shelterHandler.HandleUpdate)
		r.Patch("/shelters/{username}/password", shelterHandler.HandleUpdatePassword)
		r.Delete("/shelters/{username}", shelterHandler.HandleDelete)
		r.Post("/shelters/{username}/contact", shelterHandler.HandleContact)

		r.Get("/adopters", adopterHandler.HandleList)
		r.Get("/adopters/{username}", adopterHandler.HandleGet)
		r.Patch("/adopters/{username}", adopterHandler.HandleUpdate)
		r.Patch("/adopters/{username}/password", adopterHandler.HandleUpdatePassword)
		r.Delete("/adopters/{username}", adopterHandler.HandleDelete)
		r.Get("/adopters/{username}/favorites", adopterHandler.HandleListFavorites)
		r.Post("/adopters/{username}/favorites/{dogId}", adopterHandler.HandleFavorite)
		r.Delete("/adopters/{username}/favorites/{dogId}", adopterHandler.HandleUnfavorite)

		r.Get("/dogs", dogHandler.HandleList)
		r.Get("/dogs/{id}", dogHandler.HandleGet)
		r.Post("/dogs", dogHandler.HandleCreate)
		r.Patch("/dogs/{id}", dogHandler.HandleUpdate)
		r.Delete("/dogs/{id}", dogHandler.HandleDelete)

		r.Get("/breeds", breedHandler.HandleList)
		r.Post("/breeds/sync", breedHandler.HandleSync)
	})

	return nil
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("database", s.config.Database.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
