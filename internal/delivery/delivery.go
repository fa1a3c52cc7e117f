// Package delivery defines the contract every transport surface implements.
package delivery

import "context"

// Delivery is a serving surface whose lifetime is bound to the application.
type Delivery interface {
	// Serve blocks until the surface stops or the context is canceled.
	Serve(ctx context.Context) error
}
