package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/config"
	"github.com/openrx/pharmacy-api/handlers"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/notify"
	"github.com/openrx/pharmacy-api/persistence"
	"github.com/openrx/pharmacy-api/scheduler"
	"github.com/openrx/pharmacy-api/server"
	"github.com/openrx/pharmacy-api/session"
)

func main() {
	// Load .env if present, environment variables take precedence
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir)
	logging.Info("Starting pharmacy API",
		"env", cfg.Env,
		"address", cfg.Address,
		"port", cfg.Port,
	)

	// Catalog: CSV import when configured, built-in inventory otherwise
	medicines := catalog.DefaultMedicines()
	if cfg.CatalogFile != "" {
		imported, err := catalog.LoadCSV(cfg.CatalogFile)
		if err != nil {
			logging.Error("Failed to import catalog file", "file", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
		medicines = imported
	}
	store := catalog.NewStore(medicines)
	logging.Info("Catalog loaded", "medicine_count", store.Len(), "total_stock", store.TotalStock())

	repo, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		logging.Error("Failed to open cart database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	carts := cart.NewRegistry(store, repo, notify.LogNotifier{})
	sessions := session.NewManager(cfg.SessionSecret)

	deps := &handlers.Deps{
		Catalog:  store,
		Carts:    carts,
		Sessions: sessions,
		Repo:     repo,
	}

	sched := scheduler.NewScheduler(store, repo)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, deps)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit
	logging.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	} else {
		logging.Info("Server exited gracefully")
	}

	// Wait a bit for any ongoing requests to complete
	logging.Info("Waiting for ongoing requests to complete...")
	time.Sleep(2 * time.Second)

	logging.Info("Server shutdown complete")
}
