package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"

	"github.com/laraui-labs/laraui/internal/branding"
)

// DiskCache persists fetched manifests between CLI invocations. Each entry is
// a JSON file guarded by a sibling lock file so concurrent invocations never
// observe a half-written entry.
type DiskCache struct {
	dir string
}

// NewDiskCache stores entries under dir.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{dir: dir}
}

// DefaultDiskCache stores entries under the user cache home
// (e.g. ~/.cache/laraui on Linux).
func DefaultDiskCache() *DiskCache {
	return NewDiskCache(filepath.Join(xdg.CacheHome, branding.CacheDir()))
}

// Dir returns the cache directory.
func (d *DiskCache) Dir() string {
	return d.dir
}

func (d *DiskCache) path(key string) string {
	if len(key) > 16 {
		key = key[:16]
	}
	return filepath.Join(d.dir, "manifest-"+key+".json")
}

// load returns the stored entry for key, or nil when nothing is stored.
// Expiry is left to the caller.
func (d *DiskCache) load(key string) (*cacheEntry, error) {
	path := d.path(key)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("locking manifest cache: %w", err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest cache: %w", err)
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("parsing manifest cache %s: %w", path, err)
	}
	if entry.Key != key {
		return nil, nil
	}
	return &entry, nil
}

func (d *DiskCache) store(entry *cacheEntry) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling manifest cache: %w", err)
	}

	path := d.path(entry.Key)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking manifest cache: %w", err)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing manifest cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalizing manifest cache: %w", err)
	}
	return nil
}
