// Package resourcestore holds the named byte payloads served to the
// compilation engine: program sources, imported modules and ops descriptors.
package resourcestore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/progbridge/progbridge/domain/ports"
)

// DefaultMaxFileSize caps a single loaded resource (16MB).
const DefaultMaxFileSize = 16 * 1024 * 1024

// storeConfig holds configuration for the Store.
type storeConfig struct {
	logger      *slog.Logger
	maxFileSize int64
}

func defaultStoreConfig() storeConfig {
	return storeConfig{
		maxFileSize: DefaultMaxFileSize,
	}
}

// Option configures a Store instance.
type Option func(*storeConfig)

// WithMaxFileSize sets the largest file Load accepts. Larger files fail the load.
func WithMaxFileSize(n int64) Option {
	return func(c *storeConfig) {
		c.maxFileSize = n
	}
}

// WithLogger sets the logger load failures are reported on. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *storeConfig) {
		c.logger = logger
	}
}

// Store maps resource names to bytes. The first payload stored under a name
// wins; later loads of the same name succeed without touching it. Store is
// safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	resources map[string][]byte
	config    storeConfig
}

// New creates an empty Store with the given options.
func New(opts ...Option) *Store {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Store{
		resources: make(map[string][]byte),
		config:    cfg,
	}
}

// compile-time check
var _ ports.ResourceProvider = (*Store)(nil)

// CleanName normalizes a resource name: backslashes become slashes, "." and
// ".." elements are resolved and a leading "./" or "/" is dropped. It returns
// "" for a name that resolves to nothing.
func CleanName(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, `\`, "/"))
	name = strings.TrimPrefix(name, "/")
	return name
}

// Load reads the file at filePath and stores it under name. It reports false
// when the file cannot be read; I/O problems are logged, never raised.
func (s *Store) Load(filePath, name string) bool {
	return s.LoadFile(filePath, name) == nil
}

// LoadFile is Load returning the cause of a failed load.
func (s *Store) LoadFile(filePath, name string) error {
	return s.load(filePath, name, func() ([]byte, error) {
		info, err := os.Stat(filePath)
		if err != nil {
			return nil, err
		}
		if err := s.checkSize(info); err != nil {
			return nil, err
		}
		return os.ReadFile(filePath)
	})
}

// LoadFS is Load reading from fsys instead of the host filesystem.
func (s *Store) LoadFS(fsys fs.FS, filePath, name string) bool {
	return s.load(filePath, name, func() ([]byte, error) {
		info, err := fs.Stat(fsys, filePath)
		if err != nil {
			return nil, err
		}
		if err := s.checkSize(info); err != nil {
			return nil, err
		}
		return fs.ReadFile(fsys, filePath)
	}) == nil
}

func (s *Store) checkSize(info fs.FileInfo) error {
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	if s.config.maxFileSize > 0 && info.Size() > s.config.maxFileSize {
		return fmt.Errorf("file size %d exceeds limit %d", info.Size(), s.config.maxFileSize)
	}
	return nil
}

// ErrEmptyName is returned for a resource name that cleans to nothing.
var ErrEmptyName = errors.New("empty resource name")

func (s *Store) load(filePath, name string, read func() ([]byte, error)) error {
	key := CleanName(name)
	if key == "" {
		s.config.logger.Warn("resource load rejected: empty name", "path", filePath)
		return ErrEmptyName
	}

	if s.has(key) {
		return nil
	}

	data, err := read()
	if err != nil {
		s.config.logger.Warn("resource load failed",
			"path", filePath,
			"name", key,
			"error", err)
		return err
	}
	if data == nil {
		data = []byte{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.resources[key]; !exists {
		s.resources[key] = data
	}
	return nil
}

// Put stores a copy of data under name, with the same first-wins policy as Load.
func (s *Store) Put(name string, data []byte) bool {
	key := CleanName(name)
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.resources[key]; !exists {
		s.resources[key] = append([]byte{}, data...)
	}
	return true
}

// Get returns the bytes stored under name. The slice is borrowed: it stays
// valid for the lifetime of the Store and must not be modified.
func (s *Store) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.resources[CleanName(name)]
	return data, ok
}

// Serve implements ports.ResourceProvider.
func (s *Store) Serve(name string) ([]byte, bool) {
	return s.Get(name)
}

// Names returns the stored resource names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.resources))
	for name := range s.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored resources.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

func (s *Store) has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.resources[key]
	return ok
}
