package ports

import "pointage/models"

// Notifier pushes session transitions to live dashboard listeners.
// Implementations must be fire-and-forget: a slow or failed delivery can
// never fail the state transition that triggered it.
type Notifier interface {
	SessionChanged(event models.SessionChangedEvent)
}

// NopNotifier discards all events
type NopNotifier struct{}

func (NopNotifier) SessionChanged(models.SessionChangedEvent) {}
