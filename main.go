package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pwambugu/glassauth/internal/api"
	"github.com/pwambugu/glassauth/internal/auth"
	"github.com/pwambugu/glassauth/internal/config"
	"github.com/pwambugu/glassauth/internal/database"
	"github.com/pwambugu/glassauth/internal/logger"
	"github.com/pwambugu/glassauth/internal/mail"
	"github.com/pwambugu/glassauth/internal/monitoring"
	"github.com/pwambugu/glassauth/internal/services"
	"github.com/pwambugu/glassauth/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	logger.Init(cfg.AppEnv)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the mail transport
	var mailer mail.Mailer
	if cfg.SMTPUser != "" {
		mailer, err = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
		if err != nil {
			log.Fatalf("Failed to initialize mail transport: %v", err)
		}
	} else {
		log.Println("SMTP not configured, verification emails disabled")
		mailer = mail.NopMailer{}
	}

	// Set up the event feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db, cfg.RequireVerifiedEmail)

	// Set up and run the background event retention sweeper
	sweeper, err := monitoring.NewSweeper(eventService, cfg.EventSweepSchedule, cfg.EventRetention)
	if err != nil {
		log.Fatalf("Failed to initialize event sweeper: %v", err)
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(hub, userService, eventService, issuer, mailer, cfg.PublicURL, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
