// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts
// and stops multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Start launches the worker's goroutine bound to ctx; Stop cancels it and
// blocks until the goroutine has fully exited.
//
// Implementations must tolerate Stop before Start and repeated Stop calls.
//
// Example implementation:
//
//	type MyWorker struct{ lifecycle }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    w.launch(ctx, func(ctx context.Context) {
//	        // background processing until ctx is cancelled
//	    })
//	}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
