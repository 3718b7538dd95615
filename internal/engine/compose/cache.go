package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"sync"
	"time"
)

type cachedLabel struct {
	img      image.Image
	cachedAt time.Time
}

// Cache keeps recently composed labels keyed by request digest so the
// preview and PDF endpoints can reuse a composition instead of re-encoding
// the symbol on every call.
type Cache struct {
	store sync.Map // map[digest]*cachedLabel
	ttl   time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

func (c *Cache) Get(key string) (image.Image, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	entry := val.(*cachedLabel)
	if time.Since(entry.cachedAt) > c.ttl {
		c.store.Delete(key)
		return nil, false
	}

	return entry.img, true
}

func (c *Cache) Set(key string, img image.Image) {
	c.store.Store(key, &cachedLabel{img: img, cachedAt: time.Now()})
}

// Digest identifies a composition request. Two requests with the same code,
// kind and options always produce the same label.
func Digest(code, kind string, opts Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%g\x00%d\x00%d",
		code, kind, opts.Description, opts.Position, opts.FontSize, opts.GapOrDefault(), opts.SymbolWidthPx)
	return hex.EncodeToString(h.Sum(nil))
}
