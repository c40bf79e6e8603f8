// Package delivery defines the contract every inbound adapter fulfills.
package delivery

import "context"

// Delivery is a long-running inbound adapter (HTTP server, scheduler).
// Serve blocks until the adapter stops or the context is canceled.
type Delivery interface {
	Serve(ctx context.Context) error
}
