package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fraudlens/internal/config"
	"fraudlens/internal/email/noop"
	"fraudlens/internal/email/ses"
	"fraudlens/internal/handler"
	"fraudlens/internal/port"
	"fraudlens/internal/repository/postgres"
	"fraudlens/internal/router"
	"fraudlens/internal/service"
	s3storage "fraudlens/internal/storage/s3"
)

// @title FraudLens API
// @version 1.0
// @description Fraud analysis normalization and export service.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	analysisRepo := postgres.NewAnalysisRepo(db)
	exportRepo := postgres.NewAnalysisExportRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	analysisSvc := service.NewAnalysisService(analysisRepo, exportRepo, s3Client, cfg.S3.Bucket)
	exportSvc := service.NewExportService(analysisRepo, exportRepo, s3Client, emailSender, &cfg.S3, cfg.Export.TTL)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc, exportSvc)
	exportH := handler.NewExportHandler(exportSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the export cleanup worker
	worker := service.NewExportCleanupWorker(exportSvc, service.ExportCleanupConfig{
		PollInterval: time.Duration(cfg.Export.CleanupIntervalSecs) * time.Second,
		BatchSize:    cfg.Export.CleanupBatchSize,
	})
	go worker.Start(ctx)

	// Setup router and HTTP server
	r := router.Setup(cfg, analysisH, exportH, statsH, healthH)
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
