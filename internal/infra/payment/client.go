package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
)

var (
	errSessionRequest  = errs.New("failed to build checkout session request")
	errSessionCall     = errs.New("checkout session request failed")
	errSessionDecode   = errs.New("failed to decode checkout session response")
	errSessionRejected = errs.New("payment processor rejected checkout session")
)

// Client talks to a Stripe-compatible payment processor over its
// form-encoded REST API.
type Client struct {
	apiBase    string
	secretKey  string
	successURL string
	cancelURL  string
	httpClient *http.Client
	verifier   *SignatureVerifier
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		secretKey:  cfg.SecretKey,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		verifier:   NewSignatureVerifier(cfg.WebhookSecret, cfg.WebhookTolerance),
	}
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, params commands.CheckoutParams) (*commands.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.Description)
	}
	form.Set("metadata[booking_id]", params.BookingID.String())
	form.Set("metadata[user_id]", params.UserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Mark(err, errSessionRequest)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Mark(err, errSessionCall)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Mark(err, errSessionDecode)
	}

	var decoded checkoutSessionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errs.Mark(err, errSessionDecode)
	}

	if resp.StatusCode != http.StatusOK {
		msg := decoded.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, errs.Mark(errs.New(msg), errSessionRejected)
	}
	if decoded.ID == "" || decoded.URL == "" {
		return nil, errs.Mark(errs.New("response missing session id or url"), errSessionDecode)
	}

	return &commands.CheckoutSession{ID: decoded.ID, URL: decoded.URL}, nil
}

func (c *Client) VerifyEvent(payload []byte, signatureHeader string) (*commands.ConfirmationEvent, error) {
	return c.verifier.VerifyEvent(payload, signatureHeader)
}
