// Package assetstore provides a thread-safe in-memory store for image asset
// documents with filesystem persistence and optional file watching.
package assetstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/hmans/sanityimage/internal/imagedata"
)

var (
	ErrNotFound    = errors.New("asset not found")
	ErrAmbiguousID = errors.New("ambiguous ID prefix matches multiple assets")
)

// Store provides thread-safe in-memory storage for asset documents.
type Store struct {
	root   string // directory holding one document per asset
	logger zerolog.Logger

	mu     sync.RWMutex
	assets map[string]*imagedata.Asset // ID -> Asset
	paths  map[string]string           // file path -> ID

	// File watching (optional)
	watching bool
	done     chan struct{}

	subMu       sync.RWMutex
	subscribers map[uint64]*subscription
	nextSubID   uint64
}

// New creates a Store rooted at dir.
func New(root string, logger zerolog.Logger) *Store {
	return &Store{
		root:        root,
		logger:      logger,
		assets:      make(map[string]*imagedata.Asset),
		paths:       make(map[string]string),
		subscribers: make(map[uint64]*subscription),
	}
}

// Root returns the directory the store reads from.
func (s *Store) Root() string {
	return s.root
}

// Init creates the asset directory if it doesn't exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.root, 0755)
}

// Load reads all asset documents from disk into memory.
// A missing directory yields an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = make(map[string]*imagedata.Asset)
	s.paths = make(map[string]string)

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !isAssetFile(entry.Name()) {
			continue
		}

		path := filepath.Join(s.root, entry.Name())
		a, err := loadAsset(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}

		s.assets[a.ID] = a
		s.paths[path] = a.ID
	}

	return nil
}

// isAssetFile reports whether name looks like an asset document.
func isAssetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// loadAsset reads and validates a single asset document.
func loadAsset(path string) (*imagedata.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var a imagedata.Asset
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &a)
	} else {
		err = yaml.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, err
	}

	// Fall back to the filename when the document carries no id
	if a.ID == "" {
		a.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	ref, err := imagedata.ParseAssetID(a.ID)
	if err != nil {
		return nil, err
	}
	applyDefaults(&a, ref)

	return &a, nil
}

// applyDefaults fills fields derivable from the asset id.
func applyDefaults(a *imagedata.Asset, ref imagedata.AssetRef) {
	if a.Extension == "" {
		a.Extension = ref.Extension
	}
	if a.MimeType == "" {
		a.MimeType = "image/" + mimeSubtype(ref.Extension)
	}
	if a.Metadata == nil {
		a.Metadata = &imagedata.Metadata{}
	}
	if a.Metadata.Dimensions.Width == 0 || a.Metadata.Dimensions.Height == 0 {
		a.Metadata.Dimensions.Width = ref.Width
		a.Metadata.Dimensions.Height = ref.Height
	}
	if a.Metadata.Dimensions.AspectRatio == 0 {
		a.Metadata.Dimensions.AspectRatio = ref.AspectRatio()
	}
}

func mimeSubtype(ext string) string {
	switch ext {
	case "jpg":
		return "jpeg"
	case "svg":
		return "svg+xml"
	default:
		return ext
	}
}

// All returns all assets sorted by ID.
func (s *Store) All() []*imagedata.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*imagedata.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Len returns the number of assets in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}

// Get finds an asset by ID or unique ID prefix.
func (s *Store) Get(idPrefix string) (*imagedata.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.assets[idPrefix]; ok {
		return a, nil
	}
	if idPrefix == "" {
		return nil, ErrNotFound
	}

	var matches []*imagedata.Asset
	for id, a := range s.assets {
		if strings.HasPrefix(id, idPrefix) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, ErrAmbiguousID
	}
}

// Put validates a, writes it to disk as YAML and adds it to the store.
func (s *Store) Put(a *imagedata.Asset) error {
	ref, err := imagedata.ParseAssetID(a.ID)
	if err != nil {
		return err
	}
	applyDefaults(a, ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	content, err := yaml.Marshal(a)
	if err != nil {
		return err
	}

	path := s.FullPath(a.ID)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	s.assets[a.ID] = a
	s.paths[path] = a.ID

	return nil
}

// Delete removes an asset by ID or unique ID prefix.
func (s *Store) Delete(idPrefix string) error {
	a, err := s.Get(idPrefix)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for path, id := range s.paths {
		if id != a.ID {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		delete(s.paths, path)
	}
	delete(s.assets, a.ID)

	return nil
}

// FullPath returns the path an asset is written to by Put.
func (s *Store) FullPath(id string) string {
	return filepath.Join(s.root, id+".yaml")
}

// Close stops any active file watcher.
func (s *Store) Close() error {
	return s.Unwatch()
}
