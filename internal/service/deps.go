package service

import (
	"context"
	"io"
)

// Mailer delivers transactional mail. Services call it fire-and-forget:
// delivery failures are logged and never fail the triggering operation.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, username, baseURL, token string) error
	SendPasswordReset(ctx context.Context, email, username, token string) error
}

// Producer publishes domain events. Publish failures are logged and
// swallowed; events are best-effort.
type Producer interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// Uploader pushes photo bytes to the external image host and returns the
// delivery URL to persist.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
}
