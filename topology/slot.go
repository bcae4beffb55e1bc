package topology

import (
	"sync"
	"time"
)

// slot is the single-slot result channel: the worker installs each new
// snapshot as "latest", replacing any prior value; consumers read whole
// snapshots or wait briefly for a newer one. A repeatedly-replaceable
// reference stands in for a chain of one-shot promise/future pairs.
type slot struct {
	mu  sync.Mutex
	cur *Snapshot
	seq uint64
	ch  chan struct{} // closed and replaced on every publish
}

func newSlot() *slot {
	return &slot{ch: make(chan struct{})}
}

// publish installs snap as the latest snapshot. The worker must not touch
// snap afterwards.
func (s *slot) publish(snap *Snapshot) {
	s.mu.Lock()
	s.seq++
	snap.seq = s.seq
	s.cur = snap
	close(s.ch)
	s.ch = make(chan struct{})
	s.mu.Unlock()
}

// latest returns the most recently published snapshot without blocking.
func (s *slot) latest() (*Snapshot, bool) {
	s.mu.Lock()
	cur := s.cur
	s.mu.Unlock()
	return cur, cur != nil
}

// await returns the first snapshot published after sequence number after,
// waiting at most timeout. It never blocks the caller beyond timeout and
// never observes a partially built snapshot.
func (s *slot) await(after uint64, timeout time.Duration) (*Snapshot, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		s.mu.Lock()
		cur, ch := s.cur, s.ch
		s.mu.Unlock()

		if cur != nil && cur.seq > after {
			return cur, true
		}
		select {
		case <-ch:
		case <-timer.C:
			return nil, false
		}
	}
}
