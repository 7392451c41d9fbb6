// AngelaMos | 2026
// notifier.go

package auth

import (
	"context"
	"log/slog"
)

// Notifier delivers a login code out-of-band. Production deployments plug an
// SMS or email provider in here; nothing in this repository implements one.
type Notifier interface {
	Send(ctx context.Context, destination, code string) error
}

// LogNotifier is the development implementation: the code is written to the
// log instead of being delivered anywhere.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(
	ctx context.Context,
	destination, code string,
) error {
	n.logger.InfoContext(ctx, "login code issued",
		"destination", destination,
		"code", code,
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
