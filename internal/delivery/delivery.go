// Package delivery defines the entrypoints that expose the catalog to the outside world.
package delivery

import "context"

// Delivery is a long-running transport started by the application.
type Delivery interface {
	Serve(ctx context.Context) error
}
