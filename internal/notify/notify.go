package notify

import "context"

// Notifier delivers a best-effort text message to the operator
// channel. Callers treat failures as advisory: they are logged and
// never surfaced to the customer.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Nop discards every message. Used when no channel is configured.
type Nop struct{}

func (Nop) Send(context.Context, string) error { return nil }
