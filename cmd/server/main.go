package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rcverify-service/internal/infrastructure/config"
	"rcverify-service/internal/infrastructure/oauth"
	"rcverify-service/internal/infrastructure/persistence"
	"rcverify-service/internal/infrastructure/seed"
	"rcverify-service/internal/domain/repository"
	gmailMailer "rcverify-service/internal/interface/gmail"
	"rcverify-service/internal/interface/httpapi"
	mongoRepo "rcverify-service/internal/interface/repository"
	"rcverify-service/internal/usecase"
	"rcverify-service/pkg/logger"
	"rcverify-service/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting RC Verification Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	rcRepo := mongoRepo.NewMongoRcRepository(db)
	historyRepo := mongoRepo.NewMongoOwnershipHistoryRepository(db)

	// Registration-state reference data lives in PostgreSQL; optional.
	var gormDB *gorm.DB
	var stateRepo repository.StateRepository
	if cfg.PostgresURI != "" {
		gormDB, err = gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		stateRepo = mongoRepo.NewGormStateRepository(gormDB)
	}

	// Set up the Gmail notification gateway; optional.
	var mailer repository.MailerRepository = gmailMailer.NewNoopMailer(log)
	if cfg.GmailClientID != "" && cfg.GmailRefreshToken != "" {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		tokenSource := gmailOAuth.GetTokenSource(ctx)

		mailer, err = gmailMailer.NewGmailMailer(ctx, tokenSource, cfg.MailFrom, log)
		if err != nil {
			log.Fatal("Failed to create Gmail mailer", "error", err)
		}
	} else {
		log.Warn("Gmail credentials not configured, notifications disabled")
	}

	// Metrics and the lifecycle service
	m := metrics.NewMetrics("rcverify")
	rcService := usecase.NewRcService(
		rcRepo,
		historyRepo,
		mailer,
		m,
		log,
		usecase.UpdateMissingPolicy(cfg.UpdateMissingPolicy),
	)

	// Seed reference and demo data when asked
	if cfg.SeedSampleData {
		seeder := seed.NewSeeder(rcService, rcRepo, gormDB, log)
		if err := seeder.Run(ctx); err != nil {
			log.Error("Seeding failed", "error", err)
		}
	}

	// Timezone used for the monthly stats buckets
	statsLoc := time.Local
	if cfg.StatsTimezone != "" {
		statsLoc, err = time.LoadLocation(cfg.StatsTimezone)
		if err != nil {
			log.Fatal("Invalid STATS_TIMEZONE", "tz", cfg.StatsTimezone, "error", err)
		}
	}

	// HTTP API
	rcHandler := httpapi.NewRcHandler(rcService, statsLoc, log)
	reportHandler := httpapi.NewReportHandler(rcRepo, stateRepo, log)
	e := httpapi.NewRouter(rcHandler, reportHandler, m, cfg.AdminSecretKey)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("RC Verification Service stopped")
}
