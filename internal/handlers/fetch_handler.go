package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Niffb/Livwishlist/internal/services"
	log "github.com/sirupsen/logrus"
)

// FetchHandler exposes the metadata extraction preview.
type FetchHandler struct {
	Service *services.FetchService
}

// NewFetchHandler creates a new instance of FetchHandler.
func NewFetchHandler(service *services.FetchService) *FetchHandler {
	return &FetchHandler{Service: service}
}

// ExtractHandler looks up metadata for a URL and returns the form-fill
// preview. Extraction problems are not errors; they come back as previews
// with fallback copy.
func (h *FetchHandler) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if request.URL == "" {
		http.Error(w, "Missing url", http.StatusBadRequest)
		return
	}

	preview, err := h.Service.Fetch(r.Context(), request.URL)
	if err != nil {
		if errors.Is(err, services.ErrFetchInProgress) {
			http.Error(w, "A fetch is already in progress", http.StatusTooManyRequests)
			return
		}
		log.WithError(err).Error("Extraction failed unexpectedly")
		http.Error(w, "Extraction failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preview)
}
