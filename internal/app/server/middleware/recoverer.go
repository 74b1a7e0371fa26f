package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"francoggm/wiinpay-pix-relay/internal/models"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Recoverer turns a handler panic into a logged panic_recovered event and a JSON 500.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic_recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("message", fmt.Sprint(rvr)),
					zap.ByteString("stack", debug.Stack()),
				)

				body, _ := sonic.Marshal(models.ErrorResponse{Error: "internal server error"})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write(body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
