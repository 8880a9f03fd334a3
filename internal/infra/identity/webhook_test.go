//go:build unit

package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"stayhub/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentitySecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("identity-test-key"))

func newTestVerifier(t *testing.T, at time.Time) *WebhookVerifier {
	t.Helper()
	v, err := NewWebhookVerifier(testIdentitySecret, 5*time.Minute)
	require.NoError(t, err)
	v.now = func() time.Time { return at }
	return v
}

func signedHeaders(id string, at time.Time, payload []byte) commands.IdentityHeaders {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte("identity-test-key"))
	mac.Write([]byte(id + "." + ts + "."))
	mac.Write(payload)
	return commands.IdentityHeaders{
		ID:        id,
		Timestamp: ts,
		Signature: "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}
}

func TestWebhookVerifier(t *testing.T) {
	now := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"user.created","data":{"id":"user_2abc","email":"guest@example.com","first_name":"Alex","last_name":"Guest","image_url":"https://img.example/a.png"}}`)

	t.Run("valid signature yields the parsed event", func(t *testing.T) {
		v := newTestVerifier(t, now)

		event, err := v.VerifyEvent(payload, signedHeaders("msg_1", now, payload))

		require.NoError(t, err)
		assert.Equal(t, commands.IdentityUserCreated, event.Type)
		assert.Equal(t, "user_2abc", event.UserID)
		assert.Equal(t, "guest@example.com", event.Email)
		assert.Equal(t, "Alex Guest", event.DisplayName)
	})

	t.Run("signature list may carry multiple entries", func(t *testing.T) {
		v := newTestVerifier(t, now)
		headers := signedHeaders("msg_1", now, payload)
		headers.Signature = "v1,bm90LXRoZS1zaWc= " + headers.Signature

		_, err := v.VerifyEvent(payload, headers)

		assert.NoError(t, err)
	})

	t.Run("missing headers rejected", func(t *testing.T) {
		v := newTestVerifier(t, now)
		headers := signedHeaders("msg_1", now, payload)
		headers.Timestamp = ""

		_, err := v.VerifyEvent(payload, headers)

		assert.ErrorIs(t, err, ErrMissingHeaders)
	})

	t.Run("stale timestamp rejected", func(t *testing.T) {
		v := newTestVerifier(t, now)
		old := now.Add(-10 * time.Minute)

		_, err := v.VerifyEvent(payload, signedHeaders("msg_1", old, payload))

		assert.ErrorIs(t, err, ErrTimestampExpired)
	})

	t.Run("tampered payload rejected", func(t *testing.T) {
		v := newTestVerifier(t, now)
		headers := signedHeaders("msg_1", now, payload)
		tampered := []byte(`{"type":"user.created","data":{"id":"user_evil"}}`)

		_, err := v.VerifyEvent(tampered, headers)

		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("signature bound to the message id", func(t *testing.T) {
		v := newTestVerifier(t, now)
		headers := signedHeaders("msg_1", now, payload)
		headers.ID = "msg_2"

		_, err := v.VerifyEvent(payload, headers)

		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("valid signature over an event without a user id rejected", func(t *testing.T) {
		v := newTestVerifier(t, now)
		orphan := []byte(`{"type":"user.created","data":{}}`)

		_, err := v.VerifyEvent(orphan, signedHeaders("msg_1", now, orphan))

		assert.ErrorIs(t, err, ErrEventPayload)
	})
}
