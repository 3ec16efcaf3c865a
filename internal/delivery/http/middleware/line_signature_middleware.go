package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"doctor-roster/pkg/response"

	"github.com/sirupsen/logrus"
)

const LineSignatureHeader = "X-Line-Signature"

// maxWebhookBody caps how much of a webhook request is read for verification
const maxWebhookBody = 1 << 20

type LineSignatureMiddleware struct {
	channelSecret []byte
	log           *logrus.Logger
}

// NewLineSignatureMiddleware verifies X-Line-Signature against channelSecret.
// With an empty secret every request is let through.
func NewLineSignatureMiddleware(channelSecret string, log *logrus.Logger) *LineSignatureMiddleware {
	return &LineSignatureMiddleware{
		channelSecret: []byte(channelSecret),
		log:           log,
	}
}

func (m *LineSignatureMiddleware) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.channelSecret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		r.Body.Close()

		if !ValidLineSignature(m.channelSecret, body, r.Header.Get(LineSignatureHeader)) {
			m.log.Warnf("Rejected LINE webhook with invalid signature from %s", r.RemoteAddr)
			response.Unauthorized(w, "Invalid signature")
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// ValidLineSignature checks signature as base64(HMAC-SHA256(secret, body))
func ValidLineSignature(secret, body []byte, signature string) bool {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(decoded) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
