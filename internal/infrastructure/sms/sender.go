package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hamrah-bazaar/internal/config"
	"hamrah-bazaar/internal/logger"

	"go.uber.org/zap"
)

// Sender delivers SMS messages.
type Sender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// NewSender returns a gateway-backed sender when a gateway URL is
// configured, and a log-only sender otherwise (development mode).
func NewSender(cfg *config.SMSConfig) Sender {
	if cfg.GatewayURL == "" {
		return &logSender{}
	}
	return &gatewaySender{
		url:    cfg.GatewayURL,
		apiKey: cfg.APIKey,
		sender: cfg.Sender,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// logSender writes the message to the log instead of delivering it.
type logSender struct{}

func (s *logSender) SendSMS(_ context.Context, to, message string) error {
	logger.Info("SMS (development mode, not delivered)",
		zap.String("to", to),
		zap.String("message", message),
	)
	return nil
}

// gatewaySender POSTs the message to an HTTP SMS gateway.
type gatewaySender struct {
	url    string
	apiKey string
	sender string
	client *http.Client
}

func (s *gatewaySender) SendSMS(ctx context.Context, to, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"from":    s.sender,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	return nil
}
