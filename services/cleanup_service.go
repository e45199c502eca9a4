package services

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// CleanupService is the janitor for generated media files. It sweeps the
// configured directories on a fixed interval and deletes every file older
// than maxAge. Artifacts are therefore retained for at least maxAge and not
// guaranteed beyond that.
type CleanupService struct {
	dirs     []string
	maxAge   time.Duration
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCleanupService(dirs []string, maxAge, interval time.Duration) *CleanupService {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("Failed to create media directory %s: %v", dir, err)
		}
	}

	return &CleanupService{
		dirs:     dirs,
		maxAge:   maxAge,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs an initial sweep and then schedules recurring ones on a
// dedicated goroutine, independent of request handling.
func (c *CleanupService) Start() {
	c.Cleanup()

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-c.stop:
				return
			}
		}
	}()

	log.Printf("Started media cleanup with interval %s, max age %s", c.interval, c.maxAge)
}

// Stop terminates the schedule and waits for a running sweep to finish.
func (c *CleanupService) Stop() {
	close(c.stop)
	<-c.done
	log.Printf("Stopped media cleanup")
}

// Cleanup performs one sweep. Individual failures are logged and skipped so
// one bad file never aborts the run.
func (c *CleanupService) Cleanup() {
	now := time.Now()

	for _, dir := range c.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("Failed to read media directory %s: %v", dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				log.Printf("Failed to stat %s: %v", entry.Name(), err)
				continue
			}

			if now.Sub(info.ModTime()) > c.maxAge {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					log.Printf("Failed to remove %s: %v", path, err)
					continue
				}
				log.Printf("Removed expired media file %s", path)
			}
		}
	}
}
