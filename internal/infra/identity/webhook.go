package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
)

var (
	ErrMissingHeaders    = errs.New("missing webhook headers")
	ErrTimestampExpired  = errs.New("webhook timestamp outside tolerance")
	ErrSignatureMismatch = errs.New("webhook signature verification failed")
	ErrEventPayload      = errs.New("failed to parse identity event")
)

// WebhookVerifier validates signed account events from the identity
// provider. The signature is an HMAC-SHA256 over "<id>.<timestamp>.<body>"
// with a base64 secret, delivered as space-separated "v1,<base64>" entries.
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

func NewWebhookVerifier(secret string, tolerance time.Duration) (*WebhookVerifier, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return nil, errs.Wrap(err, "invalid identity webhook secret")
	}
	return &WebhookVerifier{
		secret:    decoded,
		tolerance: tolerance,
		now:       time.Now,
	}, nil
}

type identityEnvelope struct {
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
	} `json:"data"`
}

func (v *WebhookVerifier) VerifyEvent(payload []byte, headers commands.IdentityHeaders) (*commands.IdentityEvent, error) {
	if headers.ID == "" || headers.Timestamp == "" || headers.Signature == "" {
		return nil, ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(headers.Timestamp, 10, 64)
	if err != nil {
		return nil, errs.Mark(err, ErrMissingHeaders)
	}
	if v.tolerance > 0 {
		if diff := v.now().Sub(time.Unix(ts, 0)); diff > v.tolerance || diff < -v.tolerance {
			return nil, ErrTimestampExpired
		}
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(headers.ID))
	mac.Write([]byte("."))
	mac.Write([]byte(headers.Timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	matched := false
	for _, entry := range strings.Fields(headers.Signature) {
		_, sig, found := strings.Cut(entry, ",")
		if !found {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
		}
	}
	if !matched {
		return nil, ErrSignatureMismatch
	}

	var envelope identityEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, errs.Mark(err, ErrEventPayload)
	}
	if envelope.Data.ID == "" {
		return nil, errs.Mark(errs.New("event missing user id"), ErrEventPayload)
	}

	return &commands.IdentityEvent{
		Type:        envelope.Type,
		UserID:      envelope.Data.ID,
		Email:       envelope.Data.Email,
		DisplayName: strings.TrimSpace(envelope.Data.FirstName + " " + envelope.Data.LastName),
		AvatarURL:   envelope.Data.ImageURL,
	}, nil
}
