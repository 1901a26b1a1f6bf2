package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/St1cky1/flight-planner/internal/entity"
)

const APIKeyHeader = "x-api-key"

// APIKeyAuth - если apiKey пустой, проверка выключена
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
				writeError(w, entity.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
