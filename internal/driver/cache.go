package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"srcdep/internal/directive"
	"srcdep/internal/source"
)

// Digest is a sha256 content hash used as cache key.
type Digest [32]byte

// Bump when the payload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores parsed directive lists keyed by file content digest.
// Only clean scans (no diagnostics) are cached, so a hit never hides a
// report. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the serialized form of one clean file scan.
type CachePayload struct {
	Schema     uint16
	Marker     string
	Directives []CachedDirective
}

// CachedDirective is one directive without its file binding; spans are
// re-attached to the current FileID on load.
type CachedDirective struct {
	Kind    uint8
	Name    string
	Default bool
	Guard   string
	Start   uint32
	End     uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a cache rooted at dir. Used by tests.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// "scans" subdirectory for readable cleanup
	return filepath.Join(c.dir, "scans", hexKey+".mp")
}

// Put serializes a clean scan into the cache with an atomic rename.
func (c *DiskCache) Put(key Digest, marker string, dirs []directive.Directive) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := &CachePayload{
		Schema:     diskCacheSchemaVersion,
		Marker:     marker,
		Directives: make([]CachedDirective, len(dirs)),
	}
	for i, d := range dirs {
		payload.Directives[i] = CachedDirective{
			Kind:    uint8(d.Kind),
			Name:    d.Name,
			Default: d.Default,
			Guard:   d.Guard,
			Start:   d.Span.Start,
			End:     d.Span.End,
		}
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads a cached scan. A schema or marker mismatch counts as a
// miss, never an error.
func (c *DiskCache) Get(key Digest, marker string, file source.FileID) ([]directive.Directive, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload CachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Marker != marker {
		return nil, false, nil
	}

	dirs := make([]directive.Directive, len(payload.Directives))
	for i, cd := range payload.Directives {
		dirs[i] = directive.Directive{
			Kind:    directive.Kind(cd.Kind),
			Name:    cd.Name,
			Default: cd.Default,
			Guard:   cd.Guard,
			Span:    source.Span{File: file, Start: cd.Start, End: cd.End},
		}
	}
	return dirs, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := fmt.Sprintf("%s.old-%s", c.dir, time.Now().Format("20060102150405"))
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
