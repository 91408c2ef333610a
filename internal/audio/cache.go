package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores synthesized clips on disk so each phrase is fetched once.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir. An empty dir disables caching.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func cacheKey(text, lang string) string {
	h := sha256.Sum256([]byte(lang + ":" + text))
	return hex.EncodeToString(h[:16])
}

func (c *Cache) path(text, lang, format string) string {
	return filepath.Join(c.dir, cacheKey(text, lang)+"."+format)
}

// Get returns a cached clip in any known format.
func (c *Cache) Get(text, lang string) (Clip, bool) {
	if c == nil || c.dir == "" {
		return Clip{}, false
	}
	for _, format := range []string{"wav", "mp3"} {
		if data, err := os.ReadFile(c.path(text, lang, format)); err == nil && len(data) > 0 {
			return Clip{Data: data, Format: format}, true
		}
	}
	return Clip{}, false
}

// Put writes clip to the cache, replacing any existing entry atomically.
func (c *Cache) Put(text, lang string, clip Clip) error {
	if c == nil || c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create audio cache: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".clip-*")
	if err != nil {
		return fmt.Errorf("create temp clip: %w", err)
	}
	if _, err := tmp.Write(clip.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close clip: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(text, lang, clip.Format)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store clip: %w", err)
	}
	return nil
}
