// Package mediacache persists last-watched positions per media item.
//
// Entries are keyed by a sha-256 digest of the media URI rather than the
// URI itself, so a resume point survives the item being re-added under a
// different playlist or relative path, and raw URIs (which may embed
// credentials or local paths) never reach the backing file.
package mediacache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ContentKey is the hex-encoded sha-256 digest identifying one media item.
type ContentKey string

// KeyForURI computes the content key for a media URI.
// URIs that parse are reserialized first so formatting variants of the
// same location map to the same key; anything else is hashed verbatim.
func KeyForURI(uri string) ContentKey {
	if u, err := url.Parse(uri); err == nil && u.Scheme != "" {
		uri = u.String()
	}
	sum := sha256.Sum256([]byte(uri))
	return ContentKey(hex.EncodeToString(sum[:]))
}

// Cache is an in-memory mapping from content key to resume position,
// backed by a single JSON document on disk.
//
// Cache is not safe for concurrent use; callers serialize access through
// the owning player record.
type Cache struct {
	path    string
	entries map[ContentKey]uint64 // position in nanoseconds
}

// Open loads the cache document at path. A missing or unreadable file is
// not an error: playback must never fail because resume data is gone, so
// any read or parse failure falls back to an empty cache rooted at the
// same path.
func Open(path string) *Cache {
	c := &Cache{path: path, entries: make(map[ContentKey]uint64)}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[ContentKey]uint64
	if err := json.Unmarshal(data, &entries); err != nil {
		return c
	}
	if entries != nil {
		c.entries = entries
	}
	return c
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.path
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// FindLastPosition returns the cached resume position for uri.
// Absence is not an error; it means no known resume point.
func (c *Cache) FindLastPosition(uri string) (time.Duration, bool) {
	return c.Lookup(KeyForURI(uri))
}

// Lookup returns the cached resume position for a content key.
func (c *Cache) Lookup(key ContentKey) (time.Duration, bool) {
	pos, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	return time.Duration(pos), true
}

// Update upserts the resume position for a content key. The change is
// in-memory only until Persist is called.
func (c *Cache) Update(key ContentKey, position time.Duration) {
	if position < 0 {
		position = 0
	}
	c.entries[key] = uint64(position)
}

// Persist serializes the full mapping and replaces the backing file.
// The document is written to a temporary file, synced, then renamed over
// the target so a crash mid-write leaves the previous document intact.
func (c *Cache) Persist() error {
	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode media cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write media cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync media cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close media cache: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace media cache: %w", err)
	}
	return nil
}
