package watcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/notescribe/internal/audiofile"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
)

type implWatcher struct {
	dir           string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	sem           *semaphore
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.dir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(audiofile.Extensions(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for running jobs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !audiofile.IsSupported(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)
			// let the writer finish copying the file in
			if err := w.settle(ctx); err != nil {
				w.wg.Wait()
				return err
			}

			if err := w.sem.acquire(ctx); err != nil {
				w.wg.Wait()
				return err
			}
			w.wg.Add(1)
			go func(path string) {
				defer w.wg.Done()
				defer w.sem.release()

				if err := w.handler(ctx, path); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", path, err)
				}
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) settle(ctx context.Context) error {
	timer := time.NewTimer(w.settleDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
