package timetable

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/schedule"
	"horaris.manresa.cat/internal/selection"
)

// LoadState is the lifecycle of the single schedule fetch.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Errored
)

func (s LoadState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "loading"
	}
}

// Snapshot is a consistent view of the manager's state.
type Snapshot struct {
	State       LoadState
	Document    *schedule.Document
	Controller  *selection.Controller
	Err         error
	LastUpdated time.Time
}

// Manager owns the schedule document for the lifetime of the process. It
// performs exactly one fetch; once that fetch completes the result never
// changes.
type Manager struct {
	config Config
	logger *slog.Logger

	mu          sync.RWMutex
	state       LoadState
	document    *schedule.Document
	controller  *selection.Controller
	err         error
	lastUpdated time.Time

	done         chan struct{}
	cancel       context.CancelFunc
	shutdownOnce sync.Once
}

// InitManager starts the background fetch of the schedule document and
// returns immediately. Until the fetch completes the manager reports Loading.
func InitManager(config Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	manager := &Manager{
		config: config,
		logger: logger.With(slog.String("component", "timetable_manager")),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go manager.load(ctx)

	return manager
}

// NewStaticManager returns a manager that is already Ready with doc.
func NewStaticManager(doc *schedule.Document) *Manager {
	manager := &Manager{
		logger: slog.Default(),
		done:   make(chan struct{}),
		cancel: func() {},
	}
	manager.setDocument(doc)
	close(manager.done)
	return manager
}

func (manager *Manager) load(ctx context.Context) {
	defer close(manager.done)

	start := time.Now()
	doc, err := LoadDocument(ctx, manager.config, manager.logger)
	if err != nil {
		logging.LogError(manager.logger, "failed to load schedule document", err,
			slog.String("source", manager.config.Source))
		manager.setError(err)
		return
	}

	manager.setDocument(doc)
	logging.LogOperation(manager.logger, "schedule_document_loaded",
		slog.String("source", manager.config.Source),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("panels", doc.PanelCount()),
		slog.Duration("duration", time.Since(start)))

	if manager.config.Verbose {
		manager.PrintStatistics()
	}
}

func (manager *Manager) setDocument(doc *schedule.Document) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.document = doc
	manager.controller = selection.NewController(doc)
	manager.state = Ready
	manager.lastUpdated = time.Now()
}

func (manager *Manager) setError(err error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.err = err
	manager.state = Errored
	manager.lastUpdated = time.Now()
}

// Snapshot returns the current lifecycle state and, when ready, the document
// and its selection controller.
func (manager *Manager) Snapshot() Snapshot {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	return Snapshot{
		State:       manager.state,
		Document:    manager.document,
		Controller:  manager.controller,
		Err:         manager.err,
		LastUpdated: manager.lastUpdated,
	}
}

// Wait blocks until the fetch has completed or ctx is done.
func (manager *Manager) Wait(ctx context.Context) error {
	select {
	case <-manager.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown abandons a fetch that is still in flight.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		manager.cancel()
	})
}

// PrintStatistics logs a summary of the loaded document.
func (manager *Manager) PrintStatistics() {
	snap := manager.Snapshot()

	sections, trips := 0, 0
	if snap.Document != nil {
		sections = len(snap.Document.Sections)
		for _, section := range snap.Document.Sections {
			for _, day := range section.Days {
				for _, list := range day.Buses {
					trips += len(list)
				}
			}
		}
	}

	manager.logger.Info("schedule statistics",
		slog.String("source", manager.config.Source),
		slog.Bool("local_file", manager.config.isLocalFile()),
		slog.String("state", snap.State.String()),
		slog.Time("last_updated", snap.LastUpdated),
		slog.Int("sections", sections),
		slog.Int("trips", trips))
}

