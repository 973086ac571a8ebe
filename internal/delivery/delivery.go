// Package delivery defines the contract every transport entry point
// implements. Servers are collected into an Fx group and started together.
package delivery

import "context"

// Delivery is a long-running transport server.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
