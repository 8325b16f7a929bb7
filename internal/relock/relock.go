// Package relock provides a mutual exclusion lock that survives abnormal
// release by a failed holder.
//
// A holder that fails while inside its critical section releases the lock
// with [Mutex.Abandon], which leaves a poison marker behind. Unlike a
// poisoned lock in other ecosystems, the next [Mutex.Lock] does not fail:
// it discards the marker and hands out the lock as usual, on the grounds
// that the guarded data itself is still valid even though the previous
// holder was not able to finish with it.
package relock

import "sync"

// Mutex is a mutual exclusion lock with abnormal-release tracking.
//
// The zero value is an unlocked mutex. A Mutex must not be copied after
// first use. There is no try-lock and no timeout; Lock blocks until the
// current holder releases.
type Mutex struct {
	once sync.Once
	sem  chan struct{}

	// poisoned is written by the releasing holder and read by the next
	// acquirer; the semaphore channel orders the accesses.
	poisoned bool
}

func (m *Mutex) init() {
	m.once.Do(func() {
		m.sem = make(chan struct{}, 1)
	})
}

// Lock blocks until the mutex is available and acquires it.
//
// It never fails: if the previous holder released abnormally via
// [Mutex.Abandon], the poison marker is cleared and Lock proceeds.
// The return value reports whether such a marker was found, which is
// useful for tests and diagnostics; callers are free to ignore it.
func (m *Mutex) Lock() (recovered bool) {
	m.init()
	m.sem <- struct{}{}

	recovered = m.poisoned
	m.poisoned = false

	return recovered
}

// Unlock releases the mutex after a normal critical section.
//
// It panics if the mutex is not locked, matching the sync.Mutex contract.
func (m *Mutex) Unlock() {
	m.release(false)
}

// Abandon releases the mutex on behalf of a holder that failed mid-section,
// leaving a poison marker for the next acquirer to discard.
//
// Like Unlock, it panics if the mutex is not locked.
func (m *Mutex) Abandon() {
	m.release(true)
}

func (m *Mutex) release(poison bool) {
	m.init()
	m.poisoned = poison

	select {
	case <-m.sem:
	default:
		panic("relock: release of unlocked mutex")
	}
}
