package provider

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/sirupsen/logrus"
)

// pageCache is the on-disk layout of the page cache.
type pageCache struct {
	Pages map[int]Page `json:"pages"`
}

// Cached wraps a Provider with a disk-backed page cache. The whole cache
// expires together once ttl has passed since it was last written.
type Cached struct {
	inner Provider
	cache *gache.Cache[*pageCache]
	mu    sync.Mutex
}

// NewCached creates a cached provider persisting to path.
func NewCached(inner Provider, path string, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gache.New[*pageCache](&gache.Options{
			Path:       path,
			Lifetime:   ttl,
			FileSystem: osFS{},
		}),
	}
}

// Episodes returns the page from cache when present, fetching and storing it otherwise.
func (c *Cached) Episodes(ctx context.Context, page int) (Page, error) {
	if p, ok := c.lookup(page); ok {
		logrus.Debugf("page cache hit: %d", page)
		return p, nil
	}

	p, err := c.inner.Episodes(ctx, page)
	if err != nil {
		return Page{}, err
	}

	if err := c.store(page, p); err != nil {
		logrus.Warnf("writing page cache: %v", err)
	}
	return p, nil
}

func (c *Cached) lookup(page int) (Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.cache.Get()
	if err != nil || expired || data == nil {
		return Page{}, false
	}
	p, ok := data.Pages[page]
	return p, ok
}

func (c *Cached) store(page int, p Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.cache.Get()
	if err != nil || expired || data == nil || data.Pages == nil {
		data = &pageCache{Pages: make(map[int]Page)}
	}
	data.Pages[page] = p
	return c.cache.Set(data)
}

// osFS adapts the os package to gache.FileSystem.
type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}

func (osFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
