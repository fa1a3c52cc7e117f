// Package notify implements password-recovery dispatch over an HTTP webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultDispatchTimeout = 30 * time.Second

// webhookNotifier implements RecoveryNotifier by POSTing a recovery event to
// a configured endpoint. With no endpoint configured, dispatch is a logged
// no-op so the lookup flow still works in development.
type webhookNotifier struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// recoveryEvent is the webhook payload. The receiver owns delivering the
// actual recovery mail; this service only reports who asked.
type recoveryEvent struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	RequestedAt string `json:"requestedAt"`
}

// NewWebhookNotifier creates a recovery notifier from config.
func NewWebhookNotifier(cfg *config.Config, logger *slog.Logger) service.RecoveryNotifier {
	timeout := cfg.Recovery.Timeout
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}

	return &webhookNotifier{
		endpoint: cfg.Recovery.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// NotifyPasswordRecovery sends the recovery event for the given account.
func (n *webhookNotifier) NotifyPasswordRecovery(ctx context.Context, user *entity.User) error {
	if n.endpoint == "" {
		n.logger.Info("[Recovery] No endpoint configured, skipping dispatch",
			slog.String("email", user.Email),
		)

		return nil
	}

	event := recoveryEvent{
		UserID:      user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	n.logger.Info("[Recovery] Dispatching recovery event",
		slog.String("endpoint", n.endpoint),
		slog.String("userId", event.UserID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Propagate the request id for tracing across the webhook boundary.
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("recovery webhook returned non-success status: %d", resp.StatusCode)
	}

	n.logger.Info("[Recovery] Recovery event dispatched",
		slog.String("userId", event.UserID),
	)

	return nil
}
