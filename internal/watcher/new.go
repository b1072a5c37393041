package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
)

const defaultSettleDelay = 500 * time.Millisecond

// New watches dir and runs handler for each new supported recording, at
// most maxConcurrent at a time. maxConcurrent <= 0 means 1.
func New(dir string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		dir:           dir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		sem:           newSemaphore(maxConcurrent),
		settleDelay:   defaultSettleDelay,
	}, nil
}
