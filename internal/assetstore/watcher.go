package assetstore

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hmans/sanityimage/internal/imagedata"
)

const debounceDelay = 100 * time.Millisecond

// EventType represents the type of change that occurred to an asset.
type EventType int

const (
	// EventCreated indicates a new asset was added.
	EventCreated EventType = iota
	// EventUpdated indicates an existing asset was modified.
	EventUpdated
	// EventDeleted indicates an asset was removed.
	EventDeleted
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event represents a change to an asset.
type Event struct {
	Type    EventType
	Asset   *imagedata.Asset // nil for EventDeleted
	AssetID string
}

type subscription struct {
	ch chan []Event
	id uint64
}

// Subscribe creates a new subscription to asset change events.
// The channel receives batches of events after debouncing.
// Callers should defer the returned unsubscribe function.
func (s *Store) Subscribe() (<-chan []Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := atomic.AddUint64(&s.nextSubID, 1)
	ch := make(chan []Event, 16)
	s.subscribers[id] = &subscription{ch: ch, id: id}

	unsubscribe := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			close(ch)
			delete(s.subscribers, id)
		}
	}

	return ch, unsubscribe
}

// fanOut sends events to all subscribers without blocking.
// Slow subscribers have events dropped.
func (s *Store) fanOut(events []Event) {
	if len(events) == 0 {
		return
	}

	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, sub := range s.subscribers {
		select {
		case sub.ch <- events:
		default:
			s.logger.Warn().Uint64("subscriber", sub.id).Int("events", len(events)).Msg("dropping asset events for slow subscriber")
		}
	}
}

// Watch starts watching the asset directory for changes.
// In-memory state is updated before subscribers are notified.
func (s *Store) Watch() error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return nil
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		s.mu.Unlock()
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if err := watcher.Add(s.root); err != nil {
		watcher.Close()
		s.mu.Unlock()
		return err
	}

	s.watching = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.watchLoop(watcher)

	return nil
}

// Unwatch stops watching and closes all subscriber channels.
func (s *Store) Unwatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}

	close(s.done)
	s.watching = false

	s.subMu.Lock()
	for id, sub := range s.subscribers {
		close(sub.ch)
		delete(s.subscribers, id)
	}
	s.subMu.Unlock()

	return nil
}

// watchLoop processes filesystem events with debouncing.
func (s *Store) watchLoop(watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var debounceTimer *time.Timer
	var pendingMu sync.Mutex
	pendingChanges := make(map[string]fsnotify.Op)

	for {
		select {
		case <-s.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if !isAssetFile(event.Name) {
				continue
			}

			relevant := event.Op&fsnotify.Create != 0 ||
				event.Op&fsnotify.Write != 0 ||
				event.Op&fsnotify.Remove != 0 ||
				event.Op&fsnotify.Rename != 0
			if !relevant {
				continue
			}

			pendingMu.Lock()
			pendingChanges[event.Name] |= event.Op
			pendingMu.Unlock()

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				pendingMu.Lock()
				changes := pendingChanges
				pendingChanges = make(map[string]fsnotify.Op)
				pendingMu.Unlock()

				s.handleChanges(changes)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Str("dir", s.root).Msg("asset watcher error")
		}
	}
}

// handleChanges applies the changed files to the in-memory state.
func (s *Store) handleChanges(changes map[string]fsnotify.Op) {
	if len(changes) == 0 {
		return
	}

	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return
	}

	var events []Event

	for path, op := range changes {
		path = filepath.Clean(path)

		// Removed or renamed away
		if op&(fsnotify.Remove|fsnotify.Rename) != 0 && !fileExists(path) {
			id, known := s.paths[path]
			if !known {
				continue
			}
			delete(s.paths, path)
			delete(s.assets, id)
			events = append(events, Event{Type: EventDeleted, AssetID: id})
			continue
		}

		if !fileExists(path) {
			continue
		}

		a, err := loadAsset(path)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to load asset")
			continue
		}

		// The file's _id was edited in place
		if prevID, ok := s.paths[path]; ok && prevID != a.ID && !s.hasOtherPath(prevID, path) {
			delete(s.assets, prevID)
			events = append(events, Event{Type: EventDeleted, AssetID: prevID})
		}

		_, existed := s.assets[a.ID]
		s.assets[a.ID] = a
		s.paths[path] = a.ID

		eventType := EventCreated
		if existed {
			eventType = EventUpdated
		}
		events = append(events, Event{Type: eventType, Asset: a, AssetID: a.ID})
	}

	s.mu.Unlock()

	s.fanOut(events)
}

// hasOtherPath reports whether a file other than path holds id.
// Callers must hold s.mu.
func (s *Store) hasOtherPath(id, path string) bool {
	for p, other := range s.paths {
		if other == id && p != path {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
