package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"property-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "X-Idempotency-Replayed"

	idempotencyInFlight = "PROCESSING"
	idempotencyLockTTL  = 30 * time.Second
)

type storedResponse struct {
	Code int    `json:"code"`
	Body []byte `json:"body"`
}

type recordingWriter struct {
	http.ResponseWriter
	code int
	body bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.code = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a state-changing request that
// carries an Idempotency-Key already seen for the same user. Keys of failed
// (5xx) requests are released so the client can retry.
func Idempotency(client *redis.Client, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, _ := utils.GetUserIDFromContext(r.Context())
			idemKey := fmt.Sprintf("idempotency:%s:%s", userID.String(), key)
			ctx := r.Context()

			acquired, err := client.SetNX(ctx, idemKey, idempotencyInFlight, idempotencyLockTTL).Result()
			if err != nil {
				logger.Warn("Idempotency store unavailable, passing through", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if !acquired {
				replay(w, client, r, idemKey, logger)
				return
			}

			rw := &recordingWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r)

			if rw.code >= http.StatusInternalServerError {
				client.Del(ctx, idemKey)
				return
			}

			data, err := json.Marshal(storedResponse{Code: rw.code, Body: rw.body.Bytes()})
			if err != nil {
				client.Del(ctx, idemKey)
				return
			}
			if err := client.Set(ctx, idemKey, data, ttl).Err(); err != nil {
				logger.Warn("Failed to store idempotent response", zap.Error(err), zap.String("key", key))
			}
		})
	}
}

func replay(w http.ResponseWriter, client *redis.Client, r *http.Request, idemKey string, logger *zap.Logger) {
	val, err := client.Get(r.Context(), idemKey).Result()
	if err != nil && err != redis.Nil {
		logger.Warn("Failed to read idempotent response", zap.Error(err))
	}

	if err != nil || val == idempotencyInFlight {
		utils.ResponseConflict(w, "Request with this idempotency key is already in progress")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		utils.ResponseConflict(w, "Request already processed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(stored.Code)
	w.Write(stored.Body)
}
