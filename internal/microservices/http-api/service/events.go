package service

import "foodreview/internal/microservices/http-api/models"

// ReviewEvents receives every committed review change.
// Publish must not block; slow consumers are the publisher's problem.
type ReviewEvents interface {
	Publish(ev models.ReviewEvent)
}

type noopEvents struct{}

func (noopEvents) Publish(models.ReviewEvent) {}

// Option configures the services that write reviews.
type Option func(*reviewWriter)

// WithEvents forwards committed changes to events.
func WithEvents(events ReviewEvents) Option {
	return func(w *reviewWriter) {
		if events != nil {
			w.events = events
		}
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(w *reviewWriter) {
		if n > 0 {
			w.maxAttempts = n
		}
	}
}
