package fetch

import (
	"context"

	"github.com/fwojciec/readtrack"
	lru "github.com/hashicorp/golang-lru/v2"
)

var _ readtrack.Fetcher = (*Cache)(nil)

// DefaultCacheSize is the number of pages a Cache keeps.
const DefaultCacheSize = 64

// Cache remembers fetched pages by normalized URL so one command never
// downloads the same chapter twice. Failed fetches are not cached.
type Cache struct {
	next  readtrack.Fetcher
	pages *lru.Cache[string, string]
}

// NewCache wraps next with a cache holding up to size pages.
func NewCache(next readtrack.Fetcher, size int) (*Cache, error) {
	pages, err := lru.New[string, string](size)
	if err != nil {
		return nil, readtrack.Errorf(readtrack.EINVALID, "invalid cache size %d", size)
	}
	return &Cache{next: next, pages: pages}, nil
}

func (c *Cache) Fetch(ctx context.Context, url string) (string, error) {
	key := readtrack.NormalizeURL(url)
	if key == "" {
		key = url
	}
	if html, ok := c.pages.Get(key); ok {
		return html, nil
	}

	html, err := c.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	c.pages.Add(key, html)
	return html, nil
}

// Close purges the cache and closes the wrapped fetcher.
func (c *Cache) Close() error {
	c.pages.Purge()
	return c.next.Close()
}
