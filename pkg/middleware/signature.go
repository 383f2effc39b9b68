package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	SignatureHeader = "X-Webhook-Signature"
	maxWebhookBody  = 1 << 20
)

// Sign returns the signature value expected for body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// WebhookSignature accepts only requests whose body is signed with secret in
// the X-Webhook-Signature header. An empty secret rejects every request.
func WebhookSignature(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Error("Webhook rejected: signing secret not configured", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid signature")
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid request body", nil)
				return
			}

			got := strings.TrimSpace(r.Header.Get(SignatureHeader))
			if !hmac.Equal([]byte(got), []byte(Sign(secret, body))) {
				logger.Warn("Webhook rejected: bad signature",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseUnauthorized(w, "Invalid signature")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
