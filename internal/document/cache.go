package document

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when cacheEntry changes shape.
const cacheSchemaVersion uint16 = 1

// Cache stores extracted text on disk keyed by file content, so unchanged
// documents skip decoding. A nil *Cache is a valid disabled cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema  uint16
	Format  string
	Text    string
	Created time.Time
}

// OpenCache creates dir if needed.
func OpenCache(dir string) (*Cache, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// CacheKey is the hex sha256 of the content plus the lowercase extension.
func CacheKey(data []byte, ext string) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + strings.ToLower(ext)
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "text", key+".mp")
}

// Get returns the cached text. Entries from another schema are misses.
func (c *Cache) Get(key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return "", false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	if entry.Schema != cacheSchemaVersion {
		return "", false, nil
	}

	return entry.Text, true, nil
}

// Put writes the entry through a temp file and an atomic rename.
func (c *Cache) Put(key string, format Format, text string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	entry := cacheEntry{
		Schema:  cacheSchemaVersion,
		Format:  string(format),
		Text:    text,
		Created: time.Now().UTC(),
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

// Clear drops every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return os.RemoveAll(filepath.Join(c.dir, "text"))
}
