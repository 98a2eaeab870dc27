package email

import (
	"context"
	"log/slog"

	"github.com/savithru/pms-backend/internal/core/ports"
)

// MockSMTPNotifier is a secondary adapter that mocks sending emails.
// It implements the ports.Notifier interface.
type MockSMTPNotifier struct {
	from   string
	logger *slog.Logger
}

// NewMockSMTPNotifier creates a new mock notifier.
func NewMockSMTPNotifier(from string) ports.Notifier {
	return &MockSMTPNotifier{
		from:   from,
		logger: slog.Default().With("component", "email_notifier"),
	}
}

// NewMockSMTPNotifierWithLogger creates a new mock notifier with a custom logger.
func NewMockSMTPNotifierWithLogger(from string, logger *slog.Logger) ports.Notifier {
	return &MockSMTPNotifier{
		from:   from,
		logger: logger.With("component", "email_notifier"),
	}
}

// Send logs the email to the console instead of delivering it. Delivery is
// fire-and-forget, so errors are logged and never returned.
func (n *MockSMTPNotifier) Send(ctx context.Context, params ports.EmailParams) {
	if len(params.To) == 0 {
		n.logger.Warn("dropping email with no recipients", "subject", params.Subject)
		return
	}

	n.logger.Info("mock email sent",
		"from", n.from,
		"to", params.To,
		"subject", params.Subject,
		"body_length", len(params.Body),
	)
}
