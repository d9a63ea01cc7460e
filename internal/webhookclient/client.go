// Package webhookclient delivers signed payment events to a payhook instance
// the way a payment provider would.
package webhookclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AlenaMolokova/payhook/internal/constants"
	"github.com/AlenaMolokova/payhook/internal/models"
)

var (
	ErrRejected          = errors.New("payment rejected")
	ErrUserNotFound      = errors.New("user not found")
	ErrRateLimit         = errors.New("rate limit exceeded")
	ErrServerFailure     = errors.New("server failed to process payment")
	ErrTransport         = errors.New("transport failure")
	ErrAttemptsExhausted = errors.New("delivery attempts exhausted")
)

type Receipt struct {
	Status    int
	Message   string
	Duplicate bool
}

type Client struct {
	baseURL       string
	client        *http.Client
	retryInterval time.Duration
	log           *slog.Logger
}

func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: constants.DefaultDeliveryTimeout,
		},
		retryInterval: constants.DefaultRetryInterval,
		log:           log,
	}
}

func (c *Client) SetRetryInterval(d time.Duration) {
	c.retryInterval = d
}

// Deliver posts ev once. A replayed transaction id counts as delivered.
func (c *Client) Deliver(ctx context.Context, ev models.PaymentEvent) (*Receipt, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", ev.TransactionID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.WebhookPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", ev.TransactionID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, ev.TransactionID, err)
	}
	defer resp.Body.Close()

	var msg struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&msg)
	receipt := &Receipt{Status: resp.StatusCode, Message: msg.Message}

	switch {
	case resp.StatusCode == http.StatusOK:
		return receipt, nil
	case resp.StatusCode == http.StatusBadRequest && msg.Message == constants.DuplicateTransactionMessage:
		receipt.Duplicate = true
		return receipt, nil
	case resp.StatusCode == http.StatusBadRequest:
		return receipt, fmt.Errorf("%w: %s", ErrRejected, msg.Message)
	case resp.StatusCode == http.StatusNotFound:
		return receipt, ErrUserNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return receipt, ErrRateLimit
	case resp.StatusCode >= http.StatusInternalServerError:
		return receipt, fmt.Errorf("%w: %d %s", ErrServerFailure, resp.StatusCode, msg.Message)
	default:
		return receipt, fmt.Errorf("unexpected status code for %s: %d", ev.TransactionID, resp.StatusCode)
	}
}

// DeliverWithRetry redelivers ev on server failures and rate limiting, at
// most attempts times. Rejections are final.
func (c *Client) DeliverWithRetry(ctx context.Context, ev models.PaymentEvent, attempts int) (*Receipt, error) {
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		receipt, err := c.Deliver(ctx, ev)
		if err == nil || !retryable(err) {
			return receipt, err
		}
		c.log.Warn("delivery failed",
			slog.String("transaction_id", ev.TransactionID),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		if attempt >= attempts {
			return receipt, fmt.Errorf("%w: %w", ErrAttemptsExhausted, err)
		}

		// The pause starts after the failed attempt returns.
		timer := time.NewTimer(c.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(err error) bool {
	return errors.Is(err, ErrRateLimit) || errors.Is(err, ErrServerFailure) || errors.Is(err, ErrTransport)
}
