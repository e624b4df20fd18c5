// Package usecase defines the application operations offered to delivery layers.
package usecase

// Unsubscribe detaches a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// noopUnsubscribe is returned when nothing was attached.
func noopUnsubscribe() {}

// NoopUnsubscribe returns an Unsubscribe that does nothing.
func NoopUnsubscribe() Unsubscribe {
	return noopUnsubscribe
}
