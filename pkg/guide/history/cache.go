package history

import (
	"campus-guide-be/pkg/guide/nav"
	"campus-guide-be/pkg/guide/query"

	"github.com/patrickmn/go-cache"
)

// Cache maps normalized queries to the destination they resolved to.
// Entries live as long as the session; there is no eviction.
type Cache struct {
	entries *cache.Cache
}

func New() *Cache {
	// cleanup interval 0 disables the janitor goroutine
	return &Cache{entries: cache.New(cache.NoExpiration, 0)}
}

func (h *Cache) Remember(q string, d nav.Destination) {
	key := query.Normalize(q)
	if key == "" || d.IsZero() {
		return
	}
	h.entries.Set(key, d, cache.NoExpiration)
}

// Recall matches the normalized query exactly; near-identical phrasings miss.
func (h *Cache) Recall(q string) (nav.Destination, bool) {
	key := query.Normalize(q)
	if key == "" {
		return nav.Destination{}, false
	}
	if x, found := h.entries.Get(key); found {
		return x.(nav.Destination), true
	}
	return nav.Destination{}, false
}

func (h *Cache) Len() int {
	return h.entries.ItemCount()
}

// Entries copies the cache contents.
func (h *Cache) Entries() map[string]nav.Destination {
	items := h.entries.Items()
	out := make(map[string]nav.Destination, len(items))
	for k, item := range items {
		out[k] = item.Object.(nav.Destination)
	}
	return out
}
