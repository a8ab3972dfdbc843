package assessment

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"skillproof/internal/errors"
)

// CatalogWatcher watches the employer catalog file and triggers a reload
// when it changes. Events are debounced so editors that write in several
// steps cause a single reload.
type CatalogWatcher struct {
	mu sync.RWMutex

	path        string
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	reloadCallback func()
	logger         *errors.Logger

	running bool
}

// NewCatalogWatcher creates a watcher for the given catalog file
func NewCatalogWatcher(path string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*CatalogWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog watcher requires a file path")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &CatalogWatcher{
		path:           path,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the catalog file for changes
func (cw *CatalogWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("catalog watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cw.fsWatcher = watcher

	if stat, err := os.Stat(cw.path); err == nil {
		cw.lastModTime = stat.ModTime()
	}

	if err := cw.addPathToWatcher(); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && cw.logger != nil {
			cw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return err
	}

	cw.running = true
	go cw.watchLoop()

	if cw.logger != nil {
		cw.logger.Info("Employer catalog watcher started",
			"path", cw.path,
			"debounce_delay", cw.debounceDelay)
	}
	return nil
}

// addPathToWatcher watches the catalog file and its directory. Watching the
// directory catches atomic writes (rename operations) and recreation after
// deletion.
func (cw *CatalogWatcher) addPathToWatcher() error {
	if err := cw.fsWatcher.Add(cw.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to watch catalog file %s: %w", cw.path, err)
	}

	dir := filepath.Dir(cw.path)
	if err := cw.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch catalog directory %s: %w", dir, err)
	}
	return nil
}

// Stop stops the catalog watcher
func (cw *CatalogWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}

	close(cw.stopChan)

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	if cw.fsWatcher != nil {
		if err := cw.fsWatcher.Close(); err != nil {
			if cw.logger != nil {
				cw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	cw.running = false

	if cw.logger != nil {
		cw.logger.Info("Employer catalog watcher stopped")
	}
	return nil
}

// watchLoop is the main event loop for file watching
func (cw *CatalogWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.shouldProcessEvent(event) {
				cw.scheduleReload()
			}

		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			if cw.logger != nil {
				cw.logger.LogError(err, "Catalog file watcher error")
			}

		case <-cw.reloadChan:
			if cw.hasFileChanged() {
				if cw.logger != nil {
					cw.logger.Info("Employer catalog file changed, triggering reload")
				}
				cw.reloadCallback()
			}

		case <-cw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (cw *CatalogWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != cw.path && filepath.Base(event.Name) != filepath.Base(cw.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged checks if the catalog file was modified since last check
func (cw *CatalogWatcher) hasFileChanged() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	stat, err := os.Stat(cw.path)
	if err != nil {
		if os.IsNotExist(err) && !cw.lastModTime.IsZero() {
			cw.lastModTime = time.Time{}
			return true
		}
		return false
	}

	if cw.lastModTime.IsZero() || stat.ModTime().After(cw.lastModTime) {
		cw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// scheduleReload schedules a debounced reload
func (cw *CatalogWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, func() {
		select {
		case cw.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (cw *CatalogWatcher) IsRunning() bool {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.running
}
