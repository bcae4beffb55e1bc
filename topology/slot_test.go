package topology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSlot_LatestAndSequence verifies that publish replaces the latest
// snapshot and that sequence numbers grow monotonically.
func TestSlot_LatestAndSequence(t *testing.T) {
	s := newSlot()

	_, ok := s.latest()
	assert.False(t, ok, "empty slot must report no snapshot")

	first := &Snapshot{Finished: false}
	second := &Snapshot{Finished: true}
	s.publish(first)
	s.publish(second)

	got, ok := s.latest()
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Greater(t, second.seq, first.seq)
}

// TestSlot_AwaitTimesOut verifies await gives up once nothing newer than
// the given sequence arrives within the timeout.
func TestSlot_AwaitTimesOut(t *testing.T) {
	s := newSlot()
	snap := &Snapshot{}
	s.publish(snap)

	got, ok := s.await(0, 50*time.Millisecond)
	require.True(t, ok, "a snapshot newer than sequence 0 is present")
	assert.Same(t, snap, got)

	_, ok = s.await(snap.seq, 50*time.Millisecond)
	assert.False(t, ok, "nothing newer than the last snapshot was published")
}

// TestSlot_AwaitWakesOnPublish verifies a blocked await observes a
// publish from another goroutine.
func TestSlot_AwaitWakesOnPublish(t *testing.T) {
	s := newSlot()

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.publish(&Snapshot{Finished: true})
	}()

	got, ok := s.await(0, 5*time.Second)
	require.True(t, ok)
	assert.True(t, got.Finished)
}
