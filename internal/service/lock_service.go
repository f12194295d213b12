package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// LockService serializes the check-then-insert critical sections of the
// scheduling core. Each contended resource is identified by a key:
//
//	booking:<trainerID>:<date>   booking conflict check + insert
//	session:<sessionID>          capacity check, signup, waitlist moves
//	schedule:<scheduleID>        recurring-schedule expansion
//
// One logical store is owned by one API process, so an in-process keyed
// mutex around the store transaction is the serializable-write guard for
// these keys. Stale mutexes are swept in the background so the map does not
// grow with every trainer/date ever booked.
type LockService struct {
	log *logrus.Logger

	mu sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewLockService starts the background cleanup goroutine. Call Stop()
// during graceful shutdown.
func NewLockService(log *logrus.Logger) *LockService {
	svc := &LockService{
		log:      log,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupLoop()

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *LockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("LockService stopped")
	}
}

// WithLock runs fn while holding the mutex for key. Concurrent callers with
// the same key are serialized; different keys do not contend.
func (s *LockService) WithLock(key string, fn func() error) error {
	mt := s.getMutex(key)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return fn()
}

func (s *LockService) getMutex(key string) *mutexWithTimestamp {
	mt, _ := s.mu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *LockService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Lock cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStale()
		}
	}
}

// cleanupStale removes unused mutexes using TryLock: if the lock cannot be
// taken, someone is inside the critical section and the entry stays. The
// lastUsed check runs inside the lock so a fresh user cannot be swept.
func (s *LockService) cleanupStale() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.mu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.mu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale lock entries", cleaned)
	}
}
