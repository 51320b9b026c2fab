package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ilqareskerov/AccessDenied/internal/config"
	"github.com/ilqareskerov/AccessDenied/internal/handler"
	"github.com/ilqareskerov/AccessDenied/internal/middleware"
	"github.com/ilqareskerov/AccessDenied/internal/repository"
	"github.com/ilqareskerov/AccessDenied/internal/service"
	"github.com/ilqareskerov/AccessDenied/internal/sweep"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.RunMigrations(context.Background()); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	svc := service.NewService(repo, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Start campaign deadline sweeper
	sweeper := sweep.NewSweeper(svc, logger)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		logger.Fatalf("Failed to start sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	// Public routes
	r.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/api/projects", h.ListProjects).Methods("GET")
	r.HandleFunc("/api/projects/{id:[0-9]+}", h.GetProject).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/auth/password", h.ChangePassword).Methods("PUT")
	authRouter.HandleFunc("/projects", h.CreateProject).Methods("POST")
	authRouter.HandleFunc("/projects/{id:[0-9]+}/updates", h.AddProjectUpdate).Methods("POST")
	authRouter.HandleFunc("/investments/project/{id:[0-9]+}", h.MakeInvestment).Methods("POST")
	authRouter.HandleFunc("/investments/my", h.MyInvestments).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
