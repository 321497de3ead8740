// Package scheduler provides automated inventory auditing and storage health
// monitoring for the pharmacy API. It runs cron-based stock audits and
// coordinates with the catalog store and cart repository using dependency
// injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/interfaces"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/persistence"
	"github.com/openrx/pharmacy-api/validation"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles inventory audits and storage health monitoring
type Scheduler struct {
	catalog   interfaces.CatalogStore
	carts     *persistence.CartRepository
	scheduler *gocron.Scheduler
	stop      chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(catalog interfaces.CatalogStore, carts *persistence.CartRepository) *Scheduler {
	return &Scheduler{
		catalog:   catalog,
		carts:     carts,
		scheduler: gocron.NewScheduler(time.Local),
		stop:      make(chan struct{}),
	}
}

// Start initializes the scheduler with inventory audits and health monitoring
func (s *Scheduler) Start() error {
	// Initial audit
	s.auditInventory()

	// Schedule audits at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		s.auditInventory()
	})
	if err != nil {
		logging.Error("Failed to schedule inventory audits", "error", err)
		return fmt.Errorf("failed to schedule inventory audits: %w", err)
	}

	s.scheduler.StartAsync()

	// Start storage health monitoring
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stop)
	s.scheduler.Stop()
}

// auditInventory walks the catalog and reports depleted and low stock levels
func (s *Scheduler) auditInventory() {
	logging.Info(fmt.Sprintf("Starting inventory audit at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	medicines := s.catalog.List()

	report := validation.ReportCatalogQuality(medicines)

	if len(report.DuplicateIDs) > 0 {
		logging.Warn("Duplicate medicine ids detected",
			"total", len(report.DuplicateIDs),
			"id_list", report.DuplicateIDs,
		)
	}

	if report.InvalidCount > 0 {
		logging.Warn("Invalid catalog entries detected",
			"count", report.InvalidCount,
			"id_list", report.InvalidIDs,
		)
	}

	if report.Expired > 0 {
		logging.Warn("Expired medicines still on sale",
			"count", report.Expired,
			"id_list", report.ExpiredIDs,
		)
	}

	var depleted, low []string
	for i := range medicines {
		switch {
		case medicines[i].Stock == 0:
			depleted = append(depleted, medicines[i].ID)
		case medicines[i].Stock < cart.LowStockThreshold:
			low = append(low, medicines[i].ID)
		}
	}

	if len(depleted) > 0 {
		logging.Warn("Depleted medicines detected",
			"count", len(depleted),
			"medicine_ids", depleted,
		)
	}

	if len(low) > 0 {
		logging.Warn("Low stock medicines detected",
			"count", len(low),
			"threshold", cart.LowStockThreshold,
			"medicine_ids", low,
		)
	}

	elapsed := time.Since(start)
	logging.Info("Inventory audit completed",
		"duration", elapsed.String(),
		"medicine_count", len(medicines),
		"total_stock", s.catalog.TotalStock(),
	)
}

// startHealthMonitoring periodically checks that cart storage is reachable
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if s.carts == nil {
					continue
				}
				if err := s.carts.Ping(); err != nil {
					logging.Warn("Cart storage is unreachable", "error", err)
				}
			}
		}
	}()
}
