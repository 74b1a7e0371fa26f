package handlers

import (
	"io"
	"net/http"

	"francoggm/wiinpay-pix-relay/internal/app/pix"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	pixService *pix.Service
	logger     *zap.Logger
	// notificationsCh is nil when webhook fan-out is disabled.
	notificationsCh chan any
}

func NewHandlers(pixService *pix.Service, logger *zap.Logger, notificationsCh chan any) *Handlers {
	return &Handlers{
		pixService:      pixService,
		logger:          logger,
		notificationsCh: notificationsCh,
	}
}

// readJSON decodes the request body into a generic value. An empty body decodes to nil.
func readJSON(r *http.Request) (any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var body any
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return nil, err
	}

	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}
