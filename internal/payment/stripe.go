// Package payment talks to the hosted payment provider. The core only needs
// one call: create a checkout session and hand the redirect URL back.
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
	"time"

	"github.com/go-faster/errors"

	"github.com/feastly/storefront/internal/domain/order"
)

const defaultBaseURL = "https://api.stripe.com"

var _ order.CheckoutGateway = (*StripeClient)(nil)

// Config holds the Stripe connection parameters.
type Config struct {
	// SecretKey is the Stripe API secret key (sk_...).
	SecretKey string
	// Currency is the ISO currency code for all line items.
	Currency string
	// BaseURL overrides the Stripe API endpoint; used in tests.
	BaseURL string
	// Timeout bounds each API call. Defaults to 10s.
	Timeout time.Duration
}

// StripeClient creates hosted checkout sessions through the Stripe REST API.
type StripeClient struct {
	secretKey string
	currency  string
	baseURL   string
	client    *http.Client
}

// NewStripeClient returns a StripeClient for the given configuration.
func NewStripeClient(cfg Config) *StripeClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StripeClient{
		secretKey: cfg.SecretKey,
		currency:  cfg.Currency,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// sessionResponse is the subset of the Stripe checkout session object the
// core consumes.
type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession requests a hosted checkout session in payment mode and
// returns its redirect URL. No retry: a failed or hung call surfaces once to
// the caller.
func (c *StripeClient) CreateSession(ctx context.Context, lines []order.CheckoutLine, successURL, cancelURL string) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	for i, ln := range lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(ln.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", ln.Name)
		form.Set(prefix+"[quantity]", strconv.Itoa(ln.Quantity))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call stripe")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return "", errors.Errorf("stripe: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var session sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return "", errors.Wrap(err, "decode session")
	}
	if session.URL == "" {
		return "", errors.New("stripe: session has no redirect url")
	}

	return session.URL, nil
}
