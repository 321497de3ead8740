// Package handlers provides HTTP request handlers for the pharmacy API
// endpoints: catalog browsing and search, the session cart, prescription
// uploads, checkout, and health reporting.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openrx/pharmacy-api/cart"
	"github.com/openrx/pharmacy-api/catalog"
	"github.com/openrx/pharmacy-api/health"
	"github.com/openrx/pharmacy-api/interfaces"
	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/persistence"
	"github.com/openrx/pharmacy-api/session"
	"github.com/openrx/pharmacy-api/validation"
)

// Compile-time check that the catalog store satisfies the contract the
// handlers are written against.
var _ interfaces.CatalogStore = (*catalog.Store)(nil)

// Deps bundles everything the handlers need.
type Deps struct {
	Catalog  interfaces.CatalogStore
	Carts    *cart.Registry
	Sessions *session.Manager
	Repo     *persistence.CartRepository
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error body.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// ServeAllMedicines returns the full catalog.
func ServeAllMedicines(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if category := r.URL.Query().Get("category"); category != "" {
			RespondWithJSON(w, http.StatusOK, store.ByCategory(category))
			return
		}
		RespondWithJSON(w, http.StatusOK, store.List())
	}
}

// ServePagedMedicines returns paginated catalog entries.
func ServePagedMedicines(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			RespondWithError(w, http.StatusBadRequest, "Invalid page number")
			return
		}

		medicines := store.List()
		pageSize := 10
		start := (page - 1) * pageSize
		end := start + pageSize

		if start >= len(medicines) {
			RespondWithError(w, http.StatusNotFound, "Page not found")
			return
		}
		if end > len(medicines) {
			end = len(medicines)
		}

		totalItems := len(medicines)
		response := map[string]interface{}{
			"data":       medicines[start:end],
			"page":       page,
			"pageSize":   pageSize,
			"totalItems": totalItems,
			"maxPage":    (totalItems + pageSize - 1) / pageSize,
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}

// FindMedicine searches medicines by name, generic name, or brand.
func FindMedicine(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		element := strings.TrimSpace(chi.URLParam(r, "element"))
		if err := validation.ValidateSearchTerm(element); err != nil {
			logging.Warn("Unusual user input", "element", element)
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		results := store.Search(element)
		if len(results) == 0 {
			RespondWithError(w, http.StatusNotFound, "No medicines found")
			return
		}

		RespondWithJSON(w, http.StatusOK, results)
	}
}

// FindMedicineByID looks up a single catalog entry.
func FindMedicineByID(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validation.ValidateMedicineID(id); err != nil {
			logging.Warn("Unusual user input", "id", id)
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		med, exists := store.Get(id)
		if !exists {
			RespondWithError(w, http.StatusNotFound, "Medicine not found")
			return
		}

		RespondWithJSON(w, http.StatusOK, med)
	}
}

// ServeCategories returns the distinct categories with medicine counts.
func ServeCategories(store interfaces.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, store.Categories())
	}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status        string                 `json:"status"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Data          map[string]interface{} `json:"data"`
	System        map[string]interface{} `json:"system"`
}

// HealthCheck reports catalog size, total stock, active carts, and cart
// store reachability.
func HealthCheck(deps *Deps) http.HandlerFunc {
	checker := health.NewChecker(deps.Catalog, deps.Carts, deps.Repo)

	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		status, data, httpStatus := checker.Check()

		response := HealthResponse{
			Status:        status,
			UptimeSeconds: checker.Uptime().Seconds(),
			Data:          data,
			System: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc_mb": int(m.Alloc / 1024 / 1024),
					"num_gc":   m.NumGC,
				},
			},
		}

		RespondWithJSON(w, httpStatus, response)
	}
}
