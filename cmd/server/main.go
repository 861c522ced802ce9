package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Niffb/Livwishlist/internal/config"
	"github.com/Niffb/Livwishlist/internal/database"
	"github.com/Niffb/Livwishlist/internal/handlers"
	"github.com/Niffb/Livwishlist/internal/jobs"
	"github.com/Niffb/Livwishlist/internal/metadata"
	"github.com/Niffb/Livwishlist/internal/repository"
	cronjobs "github.com/Niffb/Livwishlist/internal/scheduler"
	"github.com/Niffb/Livwishlist/internal/services"
	"github.com/Niffb/Livwishlist/pkg/logger"
	"github.com/Niffb/Livwishlist/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Pick the storage backend once: the hosted table when configured,
	// otherwise the local JSON file.
	var itemRepo repository.ItemRepository
	if cfg.MongoURI != "" {
		db, err := database.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Database connection error: %v", err)
		}
		itemRepo = repository.NewMongoItemRepository(db)
		logger.Log.Info("Using remote storage backend")
	} else {
		itemRepo = repository.NewLocalItemRepository(cfg.DataFile)
		logger.Log.WithField("path", cfg.DataFile).Info("Using local storage backend")
	}

	metadataClient := metadata.NewClient(cfg.MetadataAPIURL, cfg.MetadataTimeout)

	// --- Services ---
	itemService := services.NewItemService(itemRepo, cfg.UndoWindow)
	fetchService := services.NewFetchService(metadataClient)
	authService := services.NewAuthService(cfg.AdminPassword, cfg.JWTSecret, cfg.TokenExpiry)

	// --- Handlers ---
	itemHandler := handlers.NewItemHandler(itemService)
	fetchHandler := handlers.NewFetchHandler(fetchService)
	authHandler := handlers.NewAuthHandler(authService)
	eventsHandler := handlers.NewEventsHandler(itemService)

	if err := eventsHandler.Start(context.Background()); err != nil {
		logger.Log.WithError(err).Error("Change feed unavailable, live reload disabled")
	}

	// Periodic price refresh, opt-in via configuration
	if cfg.PriceRefreshSchedule != "" {
		refresher := jobs.NewPriceRefresher(itemService, metadataClient)
		cronjobs.StartPriceRefreshJobs(refresher, cfg.PriceRefreshSchedule)
	}

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public read endpoints
	router.HandleFunc("/items", itemHandler.ListItemsHandler).Methods("GET")
	router.HandleFunc("/items/view", itemHandler.GetItemsViewHandler).Methods("GET")
	router.HandleFunc("/extract", fetchHandler.ExtractHandler).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/ws", eventsHandler.SubscribeHandler)

	// Destructive operations sit behind the admin gate
	protectedRoutes := router.PathPrefix("/items").Subrouter()
	protectedRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedRoutes.HandleFunc("", itemHandler.CreateItemHandler).Methods("POST")
	protectedRoutes.HandleFunc("/undo", itemHandler.UndoDeleteHandler).Methods("POST")
	protectedRoutes.HandleFunc("/{id}", itemHandler.UpdateItemHandler).Methods("PUT")
	protectedRoutes.HandleFunc("/{id}", itemHandler.DeleteItemHandler).Methods("DELETE")

	protectedAuthRoutes := router.PathPrefix("/auth").Subrouter()
	protectedAuthRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuthRoutes.HandleFunc("/session", authHandler.SessionHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
