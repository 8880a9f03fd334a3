//go:build unit

package payment

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/usecase/commands"
)

const testWebhookSecret = "whsec_test_secret"

func signedHeader(secret string, at time.Time, payload []byte) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature([]byte(secret), ts, payload))
}

func newTestVerifier(now time.Time) *SignatureVerifier {
	v := NewSignatureVerifier(testWebhookSecret, 5*time.Minute)
	v.now = func() time.Time { return now }
	return v
}

func TestSignatureVerifier_VerifyEvent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_123",
			"metadata": {"booking_id": "c7f2a2e4-1f7d-4a63-9f0e-2f4b8a16d901", "user_id": "user_abc"}
		}}
	}`)

	t.Run("valid signature parses event", func(t *testing.T) {
		v := newTestVerifier(now)

		event, err := v.VerifyEvent(payload, signedHeader(testWebhookSecret, now, payload))

		require.NoError(t, err)
		assert.Equal(t, commands.EventCheckoutCompleted, event.Type)
		assert.Equal(t, "cs_test_123", event.SessionID)
		assert.Equal(t, "c7f2a2e4-1f7d-4a63-9f0e-2f4b8a16d901", event.BookingID.String())
		assert.Equal(t, "user_abc", event.UserID)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		v := newTestVerifier(now)

		_, err := v.VerifyEvent(payload, signedHeader("whsec_other", now, payload))

		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		v := newTestVerifier(now)
		header := signedHeader(testWebhookSecret, now, payload)

		tampered := append([]byte(nil), payload...)
		tampered[len(tampered)-2] = ' '
		_, err := v.VerifyEvent(tampered, header)

		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("stale timestamp is rejected", func(t *testing.T) {
		v := newTestVerifier(now)
		stale := now.Add(-10 * time.Minute)

		_, err := v.VerifyEvent(payload, signedHeader(testWebhookSecret, stale, payload))

		assert.ErrorIs(t, err, ErrSignatureExpired)
	})

	t.Run("header without v1 scheme is rejected", func(t *testing.T) {
		v := newTestVerifier(now)

		_, err := v.VerifyEvent(payload, fmt.Sprintf("t=%d", now.Unix()))

		assert.ErrorIs(t, err, ErrSignatureFormat)
	})

	t.Run("second v1 digest still matches", func(t *testing.T) {
		v := newTestVerifier(now)
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=deadbeef,v1=%s", ts, computeSignature([]byte(testWebhookSecret), ts, payload))

		_, err := v.VerifyEvent(payload, header)

		assert.NoError(t, err)
	})

	t.Run("garbage payload behind valid signature fails parse", func(t *testing.T) {
		v := newTestVerifier(now)
		garbage := []byte("not json")

		_, err := v.VerifyEvent(garbage, signedHeader(testWebhookSecret, now, garbage))

		assert.ErrorIs(t, err, ErrEventPayload)
	})
}
