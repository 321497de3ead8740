// Package catalog owns the medicine catalog and its live stock counters.
// The Store is the single source of truth for availability; every other
// component holds copies and goes through the Store for stock mutations.
package catalog

// Medicine is a catalog entry. Stock and Price are the only fields that
// change after seeding; everything else is display data.
type Medicine struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	GenericName          string   `json:"genericName"`
	Brand                string   `json:"brand"`
	Category             string   `json:"category"`
	Price                float64  `json:"price"`
	Stock                int      `json:"stock"`
	Description          string   `json:"description"`
	Dosage               string   `json:"dosage"`
	Form                 string   `json:"form"`
	Manufacturer         string   `json:"manufacturer"`
	ExpiryDate           string   `json:"expiryDate"`
	PrescriptionRequired bool     `json:"prescriptionRequired"`
	SideEffects          []string `json:"sideEffects"`
	Contraindications    []string `json:"contraindications"`
	Image                string   `json:"image,omitempty"`
}
