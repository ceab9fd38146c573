package payload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one decoded payload in the store snapshot.
type Entry struct {
	Payload  Payload
	Digest   string
	LoadedAt time.Time
}

// Store serves payloads from the artifact directory the engine writes to
// (<root>/demo-<mode>/demo.json) and keeps an in-memory snapshot of them.
type Store struct {
	root         string
	syncInterval time.Duration
	log          zerolog.Logger

	mu       sync.RWMutex
	entries  map[string]Entry
	failures map[string]error
	lastSync time.Time
}

// NewStore creates a Store reading from root and re-syncing at syncInterval.
func NewStore(root string, syncInterval time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		root:         root,
		syncInterval: syncInterval,
		log:          logger.With().Str("component", "payload_store").Logger(),
		entries:      make(map[string]Entry),
		failures:     make(map[string]error),
	}
}

// ArtifactPath returns where the engine writes the payload for mode.
func ArtifactPath(root, mode string) string {
	return filepath.Join(root, "demo-"+mode, "demo.json")
}

func (s *Store) load(mode string) (Entry, error) {
	p, digest, err := LoadFile(ArtifactPath(s.root, mode))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, fmt.Errorf("%w for mode %q", ErrNotFound, mode)
		}
		return Entry{}, err
	}
	return Entry{Payload: p, Digest: digest, LoadedAt: time.Now()}, nil
}

// Sync reloads every catalog mode from disk. Modes without an artifact are
// skipped; decode and validation failures are recorded and returned joined.
func (s *Store) Sync(ctx context.Context) error {
	entries := make(map[string]Entry)
	failures := make(map[string]error)
	for _, mode := range ModeSlugs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := s.load(mode)
		switch {
		case errors.Is(err, ErrNotFound):
			continue
		case err != nil:
			failures[mode] = err
			s.log.Warn().Err(err).Str("mode", mode).Msg("payload rejected")
			continue
		}
		entries[mode] = e
	}

	s.mu.Lock()
	s.entries = entries
	s.failures = failures
	s.lastSync = time.Now()
	s.mu.Unlock()

	s.log.Debug().Int("loaded", len(entries)).Int("rejected", len(failures)).Msg("payload sync")

	errs := make([]error, 0, len(failures))
	for _, mode := range ModeSlugs() {
		if err, ok := failures[mode]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load returns the payload for mode, reading it from disk when the snapshot
// does not hold it yet.
func (s *Store) Load(mode string) (Payload, string, error) {
	if _, err := LookupMode(mode); err != nil {
		return Payload{}, "", err
	}

	s.mu.RLock()
	e, ok := s.entries[mode]
	s.mu.RUnlock()
	if ok {
		return e.Payload, e.Digest, nil
	}

	e, err := s.load(mode)
	if err != nil {
		return Payload{}, "", err
	}
	s.mu.Lock()
	s.entries[mode] = e
	delete(s.failures, mode)
	s.mu.Unlock()
	return e.Payload, e.Digest, nil
}

// Modes returns the modes currently held in the snapshot, in slug order.
func (s *Store) Modes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.entries))
	for _, mode := range ModeSlugs() {
		if _, ok := s.entries[mode]; ok {
			out = append(out, mode)
		}
	}
	return out
}

// Failures returns the last sync error per rejected mode.
func (s *Store) Failures() map[string]error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]error, len(s.failures))
	for k, v := range s.failures {
		out[k] = v
	}
	return out
}

// LastSync returns the time of the last completed sync.
func (s *Store) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

// Run syncs immediately and then every sync interval. Blocks until ctx is
// cancelled.
func (s *Store) Run(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		s.log.Warn().Err(err).Msg("payload initial sync")
	}
	if s.syncInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Sync(ctx); err != nil {
				s.log.Warn().Err(err).Msg("payload sync")
			}
		}
	}
}
