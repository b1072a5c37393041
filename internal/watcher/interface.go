// Package watcher feeds recordings dropped into a folder to a handler.
package watcher

import "context"

// Watcher monitors one directory for new recordings.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for running handlers.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created recording.
type EventHandler func(ctx context.Context, filePath string) error
