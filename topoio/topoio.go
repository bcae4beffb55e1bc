// Package topoio persists topology snapshots, so long-running
// computations can be parked on disk and resumed later through
// topology.NewFromSnapshot.
//
// The format is a small gob envelope carrying a magic string and a
// version number ahead of the snapshot itself. Snapshots are validated
// on both ends; a truncated or foreign file fails with ErrBadFormat.
package topoio

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vastyellowNew/implicit-topology/topology"
)

const (
	magic   = "implicit-topology-snapshot"
	version = 1
)

// Sentinel errors of the snapshot file format.
var (
	// ErrBadFormat indicates a file that is not a snapshot file, carries
	// a future version, or fails consistency validation.
	ErrBadFormat = errors.New("topoio: not a valid snapshot file")
	// ErrNilSnapshot indicates a nil or inconsistent snapshot passed to
	// Write.
	ErrNilSnapshot = errors.New("topoio: snapshot is nil or inconsistent")
)

// envelope is the on-disk layout.
type envelope struct {
	Magic    string
	Version  int
	Snapshot *topology.Snapshot
}

// Write encodes snap to w.
func Write(w io.Writer, snap *topology.Snapshot) error {
	if snap == nil || !snap.Consistent() {
		return ErrNilSnapshot
	}
	if err := gob.NewEncoder(w).Encode(envelope{
		Magic:    magic,
		Version:  version,
		Snapshot: snap,
	}); err != nil {
		return fmt.Errorf("topoio: encode snapshot: %w", err)
	}
	return nil
}

// Read decodes one snapshot from r, validating the envelope and the
// snapshot's internal consistency.
func Read(r io.Reader) (*topology.Snapshot, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if env.Magic != magic || env.Version != version {
		return nil, ErrBadFormat
	}
	if env.Snapshot == nil || !env.Snapshot.Consistent() {
		return nil, ErrBadFormat
	}
	return env.Snapshot, nil
}

// WriteFile writes snap to path, truncating any existing file.
func WriteFile(path string, snap *topology.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("topoio: create %s: %w", path, err)
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("topoio: close %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the snapshot stored at path.
func ReadFile(path string) (*topology.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("topoio: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
