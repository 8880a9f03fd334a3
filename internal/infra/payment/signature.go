package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	ErrSignatureFormat   = errs.New("malformed signature header")
	ErrSignatureExpired  = errs.New("signature timestamp outside tolerance")
	ErrSignatureMismatch = errs.New("signature verification failed")
	ErrEventPayload      = errs.New("failed to parse event payload")
)

// SignatureVerifier checks Stripe-style webhook signatures: the header
// carries a unix timestamp and one or more HMAC-SHA256 digests computed
// over "<timestamp>.<payload>".
type SignatureVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

func NewSignatureVerifier(secret string, tolerance time.Duration) *SignatureVerifier {
	return &SignatureVerifier{
		secret:    []byte(secret),
		tolerance: tolerance,
		now:       time.Now,
	}
}

type eventEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				BookingID string `json:"booking_id"`
				UserID    string `json:"user_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

func (v *SignatureVerifier) VerifyEvent(payload []byte, signatureHeader string) (*commands.ConfirmationEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	if v.tolerance > 0 {
		eventTime := time.Unix(timestamp, 0)
		if diff := v.now().Sub(eventTime); diff > v.tolerance || diff < -v.tolerance {
			return nil, ErrSignatureExpired
		}
	}

	expected := computeSignature(v.secret, timestamp, payload)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
		}
	}
	if !matched {
		return nil, ErrSignatureMismatch
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, errs.Mark(err, ErrEventPayload)
	}

	event := &commands.ConfirmationEvent{
		Type:      envelope.Type,
		SessionID: envelope.Data.Object.ID,
		UserID:    envelope.Data.Object.Metadata.UserID,
	}
	if raw := envelope.Data.Object.Metadata.BookingID; raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errs.Mark(err, ErrEventPayload)
		}
		event.BookingID = id
	}
	return event, nil
}

// parseSignatureHeader splits "t=1700000000,v1=abcd,v1=ef01" into the
// timestamp and the v1 digests. Unknown schemes are ignored.
func parseSignatureHeader(header string) (int64, []string, error) {
	var (
		timestamp  int64
		signatures []string
		hasT       bool
	)
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, errs.Mark(err, ErrSignatureFormat)
			}
			timestamp = ts
			hasT = true
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if !hasT || len(signatures) == 0 {
		return 0, nil, ErrSignatureFormat
	}
	return timestamp, signatures, nil
}

func computeSignature(secret []byte, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
