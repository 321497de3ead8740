package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/openrx/pharmacy-api/logging"
	"github.com/openrx/pharmacy-api/metrics"
	"github.com/openrx/pharmacy-api/prescription"
)

type prescriptionRequest struct {
	Source    string `json:"source"`    // text, pdf, image; inferred from filename when empty
	Filename  string `json:"filename"`  // optional, used to infer the source kind
	Content   string `json:"content"`   // raw text, or base64 when encoding says so
	Encoding  string `json:"encoding"`  // "base64" for binary uploads
	AddToCart bool   `json:"addToCart"` // reserve resolved candidates immediately
}

type prescriptionResponse struct {
	Candidates  []prescription.Candidate `json:"candidates"`
	Unavailable []string                 `json:"unavailable,omitempty"`
	UnitsAdded  int                      `json:"unitsAdded"`
	Cart        *cartView                `json:"cart,omitempty"`
}

// UploadPrescription runs the extraction pipeline: source text (or a
// simulated OCR stand-in for PDF/image uploads) is scanned for medicine
// candidates, candidates are resolved against the catalog, and resolved ones
// are optionally bulk-added to the session cart. Unresolved candidates are a
// normal outcome reported back for display, never an error.
func UploadPrescription(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		source := req.Source
		if source == "" && req.Filename != "" {
			inferred, err := prescription.SourceForFilename(req.Filename)
			if err != nil {
				RespondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			source = inferred
		}

		extractor, err := prescription.ExtractorForSource(source)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		payload := []byte(req.Content)
		if req.Encoding == "base64" {
			payload, err = base64.StdEncoding.DecodeString(req.Content)
			if err != nil {
				RespondWithError(w, http.StatusBadRequest, "Invalid base64 content")
				return
			}
		}

		text, err := extractor.Extract(r.Context(), req.Filename, payload)
		if err != nil {
			logging.Error("Prescription extraction failed", "filename", req.Filename, "error", err)
			RespondWithError(w, http.StatusUnprocessableEntity, "Could not extract prescription text")
			return
		}

		candidates := prescription.ExtractCandidates(text)
		candidates = prescription.Resolve(candidates, deps.Catalog)
		metrics.PrescriptionsProcessed.Inc()

		response := prescriptionResponse{Candidates: candidates}

		if req.AddToCart {
			engine := engineFor(deps, w, r)
			result := engine.BulkAddFromResolved(candidates)
			response.UnitsAdded = result.UnitsAdded
			response.Unavailable = result.Unavailable
			view := viewOf(engine)
			response.Cart = &view
		} else {
			response.Unavailable = unresolvedNames(candidates)
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}

func unresolvedNames(candidates []prescription.Candidate) []string {
	var names []string
	for _, c := range candidates {
		if c.Resolved == nil {
			names = append(names, c.RawName)
		}
	}
	return names
}
