package handlers

import (
	"net/http"

	"francoggm/wiinpay-pix-relay/internal/models"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{OK: true})
}
