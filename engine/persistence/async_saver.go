package persistence

import (
	"context"
	"log"
	"maps"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

const (
	// DefaultSaveWorkers is the number of pool workers writing blobs.
	DefaultSaveWorkers = 2

	// DefaultSaveTimeout bounds a single write.
	DefaultSaveTimeout = 5 * time.Second

	saveQueueSize = 64
)

type asyncSaverImpl struct {
	mu *sync.Mutex
	wg *sync.WaitGroup

	store   Persistence
	pool    worker.DynamicWorkerPool
	workers int
	timeout time.Duration
	onError func(fileID string, err error)

	// pending holds the newest unwritten mapping per file; active marks files with a write task queued or running.
	pending map[string]map[string]string
	active  map[string]bool
	nextID  int
	closed  bool
}

// AsyncSaver writes material mappings in the background.
//
// Writes of the same file are ordered and coalesced: while one is in flight only the newest mapping
// requested afterwards is kept, so a burst of changes costs at most two writes. Different files are
// written concurrently on a worker pool. Failures are logged and handed to the error handler; they
// never reach the caller of Save.
type AsyncSaver interface {
	Saver

	// Wait blocks until every scheduled write has finished.
	Wait()

	// Close waits for scheduled writes and rejects later ones.
	Close()
}

var _ AsyncSaver = &asyncSaverImpl{}

// NewAsyncSaver creates a saver writing through store.
//
// Parameters:
//   - store: the persistence writes go to
//   - options: functional options to configure the saver
//
// Returns:
//   - AsyncSaver: the saver
func NewAsyncSaver(store Persistence, options ...AsyncSaverOption) AsyncSaver {
	if store == nil {
		panic("async saver requires a persistence store")
	}

	s := &asyncSaverImpl{
		mu:      &sync.Mutex{},
		wg:      &sync.WaitGroup{},
		store:   store,
		workers: DefaultSaveWorkers,
		timeout: DefaultSaveTimeout,
		pending: make(map[string]map[string]string),
		active:  make(map[string]bool),
	}
	for _, option := range options {
		option(s)
	}

	s.pool = worker.NewDynamicWorkerPool(s.workers, saveQueueSize, 1*time.Second)
	return s
}

func (s *asyncSaverImpl) Save(fileID string, partMaterials map[string]string) {
	snapshot := maps.Clone(partMaterials)
	if snapshot == nil {
		snapshot = map[string]string{}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Printf("[Persistence] dropped save of %q: saver closed", fileID)
		return
	}
	s.pending[fileID] = snapshot
	if s.active[fileID] {
		s.mu.Unlock()
		return
	}
	s.active[fileID] = true
	id := s.nextID
	s.nextID++
	s.wg.Add(1)
	s.mu.Unlock()

	s.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer s.wg.Done()
			s.drain(fileID)
			return nil, nil
		},
	})
}

// drain writes the newest pending mapping of fileID until none is left.
func (s *asyncSaverImpl) drain(fileID string) {
	for {
		s.mu.Lock()
		m, ok := s.pending[fileID]
		if !ok {
			delete(s.active, fileID)
			s.mu.Unlock()
			return
		}
		delete(s.pending, fileID)
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := s.store.SaveMaterials(ctx, fileID, m)
		cancel()
		if err != nil {
			log.Printf("[Persistence] failed to save materials of %q: %v", fileID, err)
			if s.onError != nil {
				s.onError(fileID, err)
			}
		}
	}
}

func (s *asyncSaverImpl) Wait() {
	s.wg.Wait()
}

func (s *asyncSaverImpl) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}
