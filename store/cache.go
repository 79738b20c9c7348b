package store

import (
	"fmt"

	"github.com/quasilyte/gdata"
)

// DraftKey is the item the editor autosaves into.
const DraftKey = "draft"

// ItemStore is the subset of the gdata manager the cache needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Cache keeps the editor's unsaved level between runs.
type Cache struct {
	items ItemStore
}

// OpenCache opens the per-user data directory of appName.
func OpenCache(appName string) (*Cache, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("store: open cache %s: %w", appName, err)
	}
	return NewCache(m), nil
}

func NewCache(items ItemStore) *Cache {
	return &Cache{items: items}
}

// SaveDraft stores doc as the current draft.
func (c *Cache) SaveDraft(doc string) error {
	if c == nil || c.items == nil {
		return nil
	}
	if err := c.items.SaveItem(DraftKey, []byte(doc)); err != nil {
		return fmt.Errorf("store: save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the stored draft. ok is false when there is none.
func (c *Cache) LoadDraft() (doc string, ok bool, err error) {
	if c == nil || c.items == nil {
		return "", false, nil
	}
	data, err := c.items.LoadItem(DraftKey)
	if err != nil {
		return "", false, fmt.Errorf("store: load draft: %w", err)
	}
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

// ClearDraft forgets the stored draft.
func (c *Cache) ClearDraft() error {
	return c.SaveDraft("")
}
