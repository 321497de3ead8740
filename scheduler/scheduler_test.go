package scheduler

import (
	"testing"

	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/logging"
)

func TestAuditInventory(t *testing.T) {
	logging.InitLogger("")

	store := catalog.NewStore([]catalog.Medicine{
		{ID: "1", Name: "Healthy", Price: 10, Stock: 100},
		{ID: "2", Name: "Low", Price: 10, Stock: 5},
		{ID: "3", Name: "Gone", Price: 10, Stock: 0},
	})

	s := NewScheduler(store, nil)
	// Must not panic or mutate anything.
	s.auditInventory()

	if store.TotalStock() != 105 {
		t.Errorf("Audit must not change stock, got %d", store.TotalStock())
	}
}

func TestStartAndStop(t *testing.T) {
	logging.InitLogger("")

	store := catalog.NewStore([]catalog.Medicine{{ID: "1", Name: "Med", Price: 10, Stock: 10}})
	s := NewScheduler(store, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
}
