package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/storage"

	"github.com/Lllllllleong/pdfvault/internal/config"
	"github.com/Lllllllleong/pdfvault/internal/gcp"
	"github.com/Lllllllleong/pdfvault/internal/httpapi"
	"github.com/Lllllllleong/pdfvault/internal/observability"
	"github.com/Lllllllleong/pdfvault/internal/pii"
	"github.com/Lllllllleong/pdfvault/internal/pipeline"
	"github.com/Lllllllleong/pdfvault/internal/vault"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration error.", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	firestoreClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Failed to create Firestore client.", "error", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		slog.Error("Failed to create Storage client.", "error", err)
		os.Exit(1)
	}
	defer storageClient.Close()

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	manager := vault.NewManager(
		pipeline.New(pii.NewCatalog(), pipeline.MuPDFRenderer{}),
		vault.NewCredentialManager(cfg.HashCost),
		gcp.NewBucketStore(storageClient, cfg.RenditionsBucket, cfg.SignedURLTTL),
		gcp.NewDocumentStore(firestoreClient, cfg.FirestoreCollection),
		metrics,
	)

	server := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: httpapi.NewServer(manager).Handler(),
	}

	go func() {
		slog.Info("Document vault listening.", "addr", cfg.BindAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed.", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down.")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed.", "error", err)
	}
}
