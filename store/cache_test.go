package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type memItems struct {
	data map[string][]byte
	err  error
}

func (m *memItems) LoadItem(key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *memItems) SaveItem(key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = data
	return nil
}

func TestDraftRoundTrip(t *testing.T) {
	c := NewCache(&memItems{})

	_, ok, err := c.LoadDraft()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.SaveDraft(sampleDoc))
	doc, ok, err := c.LoadDraft()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleDoc, doc)

	require.NoError(t, c.ClearDraft())
	_, ok, err = c.LoadDraft()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDraftErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk full")
	c := NewCache(&memItems{err: boom})
	require.ErrorIs(t, c.SaveDraft("x"), boom)
	_, _, err := c.LoadDraft()
	require.ErrorIs(t, err, boom)
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	require.NoError(t, c.SaveDraft("x"))
	_, ok, err := c.LoadDraft()
	require.NoError(t, err)
	require.False(t, ok)
}
