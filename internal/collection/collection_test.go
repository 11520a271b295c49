package collection

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/campus/internal/kv"
)

type room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func roomSchema() Schema[room] {
	return Schema[room]{
		Key:  "rooms",
		Kind: "room",
		ID:   func(r *room) string { return r.ID },
		Unique: []UniqueKey[room]{
			{Field: "name", Value: func(r *room) string { return r.Name }},
		},
		Normalize: func(r *room) {
			r.Name = strings.TrimSpace(r.Name)
		},
		CanStore: func(_, next *room) Verdict {
			if next.Capacity < 0 {
				return Reject("capacity", "capacity must not be negative")
			}
			return Accept()
		},
		CanRemove: func(r *room) Verdict {
			if r.Capacity > 30 {
				return Reject("capacity", "cannot remove room with capacity over 30")
			}
			return Accept()
		},
	}
}

func newRooms(t *testing.T, store kv.Store) *Collection[room] {
	t.Helper()
	c := New(store, roomSchema())
	c.Load()
	return c
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	c := newRooms(t, kv.NewMemoryStore())
	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.Len())
}

func TestLoadCorruptValueIsEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Put("rooms", []byte("{not json")))

	c := newRooms(t, store)
	assert.Empty(t, c.Items())

	// The corrupt value stays until the next successful write.
	data, err := store.Get("rooms")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestLoadKeepsUndecodableElements(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Put("rooms", []byte(
		`[{"id":1710000000000,"code":"IT1","name":"Go"},{"id":"A","name":"Alpha","capacity":10}]`)))

	c := newRooms(t, store)
	assert.Equal(t, []string{"A"}, ids(c.Items()))

	require.NoError(t, c.Add(room{ID: "B", Name: "Beta"}))
	data, err := store.Get("rooms")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":1710000000000,"code":"IT1","name":"Go"},
		{"id":"A","name":"Alpha","capacity":10},
		{"id":"B","name":"Beta","capacity":0}
	]`, string(data))

	// A reload sees the same split.
	c.Load()
	assert.Equal(t, []string{"A", "B"}, ids(c.Items()))
}

func TestPersistLoadKeepsElementOrder(t *testing.T) {
	store := kv.NewMemoryStore()
	stored := `[{"id":"A","name":"Alpha","capacity":1},{"id":2},{"id":"C","name":"Gamma","capacity":3},"x"]`
	require.NoError(t, store.Put("rooms", []byte(stored)))

	c := New(store, roomSchema())
	require.NoError(t, c.Persist(c.Load()))

	data, err := store.Get("rooms")
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(data))
}

func TestLoadNormalizes(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Put("rooms", []byte(`[{"id":"A","name":"  Alpha ","capacity":10}]`)))

	c := newRooms(t, store)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Alpha", c.Items()[0].Name)
}

func TestPersistLoadRoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()
	c := New(store, roomSchema())
	items := []room{{ID: "A", Name: "Alpha", Capacity: 10}, {ID: "B", Name: "Beta", Capacity: 40}}

	require.NoError(t, c.Persist(items))
	assert.Equal(t, items, c.Load())
}

func TestPersistEmptyWritesArray(t *testing.T) {
	store := kv.NewMemoryStore()
	c := New(store, roomSchema())

	require.NoError(t, c.Persist(nil))
	data, err := store.Get("rooms")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestAdd(t *testing.T) {
	store := kv.NewMemoryStore()
	c := newRooms(t, store)
	rev := c.Revision()

	require.NoError(t, c.Add(room{ID: "A", Name: "Alpha", Capacity: 10}))
	require.NoError(t, c.Add(room{ID: "B", Name: "Beta", Capacity: 20}))

	assert.Greater(t, c.Revision(), rev)
	assert.Equal(t, []string{"A", "B"}, ids(c.Items()))

	// Reloading from the store yields the same list.
	other := newRooms(t, store)
	assert.Equal(t, c.Items(), other.Items())
}

func TestPrepend(t *testing.T) {
	c := newRooms(t, kv.NewMemoryStore())
	require.NoError(t, c.Add(room{ID: "A", Name: "Alpha"}))
	require.NoError(t, c.Prepend(room{ID: "B", Name: "Beta"}))

	assert.Equal(t, []string{"B", "A"}, ids(c.Items()))
}

func TestAddRejections(t *testing.T) {
	tests := []struct {
		name  string
		item  room
		field string
	}{
		{"duplicate id", room{ID: "A", Name: "Other"}, "id"},
		{"duplicate name", room{ID: "C", Name: "Alpha"}, "name"},
		{"store guard", room{ID: "C", Name: "Gamma", Capacity: -1}, "capacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			c := newRooms(t, store)
			require.NoError(t, c.Add(room{ID: "A", Name: "Alpha", Capacity: 10}))
			before, err := store.Get("rooms")
			require.NoError(t, err)
			rev := c.Revision()

			err = c.Add(tt.item)
			rej, ok := AsRejection(err)
			require.True(t, ok, "expected rejection, got %v", err)
			assert.Equal(t, tt.field, rej.Field)
			assert.False(t, rej.Warning())

			after, err := store.Get("rooms")
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, rev, c.Revision())
			assert.Len(t, c.Items(), 1)
		})
	}
}

func TestUpdate(t *testing.T) {
	c := newRooms(t, kv.NewMemoryStore())
	require.NoError(t, c.Add(room{ID: "A", Name: "Alpha", Capacity: 10}))
	require.NoError(t, c.Add(room{ID: "B", Name: "Beta", Capacity: 20}))

	t.Run("keeps own name", func(t *testing.T) {
		require.NoError(t, c.Update(room{ID: "A", Name: "Alpha", Capacity: 15}))
		got, ok := c.Find("A")
		require.True(t, ok)
		assert.Equal(t, 15, got.Capacity)
	})

	t.Run("name taken by another", func(t *testing.T) {
		err := c.Update(room{ID: "A", Name: "Beta", Capacity: 15})
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "name", rej.Field)
		got, _ := c.Find("A")
		assert.Equal(t, "Alpha", got.Name)
	})

	t.Run("missing", func(t *testing.T) {
		err := c.Update(room{ID: "Z", Name: "Zed"})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Z", nf.ID)
		assert.Equal(t, "room Z not found", nf.Error())
	})

	assert.Equal(t, []string{"A", "B"}, ids(c.Items()))
}

func TestReplaceChangesIdentity(t *testing.T) {
	c := newRooms(t, kv.NewMemoryStore())
	require.NoError(t, c.Add(room{ID: "A", Name: "Alpha"}))
	require.NoError(t, c.Add(room{ID: "B", Name: "Beta"}))

	err := c.Replace("A", room{ID: "B", Name: "Alpha"})
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "id", rej.Field)

	require.NoError(t, c.Replace("A", room{ID: "C", Name: "Alpha"}))
	assert.Equal(t, []string{"C", "B"}, ids(c.Items()))
	assert.False(t, c.Has("A"))
}

func TestRemove(t *testing.T) {
	c := newRooms(t, kv.NewMemoryStore())
	require.NoError(t, c.Add(room{ID: "A", Name: "Alpha", Capacity: 50}))
	require.NoError(t, c.Add(room{ID: "B", Name: "Beta", Capacity: 20}))

	_, err := c.Remove("A")
	_, ok := AsRejection(err)
	assert.True(t, ok)
	assert.True(t, c.Has("A"))

	removed, err := c.Remove("B")
	require.NoError(t, err)
	assert.Equal(t, "Beta", removed.Name)
	assert.False(t, c.Has("B"))

	_, err = c.Remove("B")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

type failingStore struct {
	kv.Store
}

func (failingStore) Put(string, []byte) error {
	return errors.New("disk full")
}

func TestCommitFailureKeepsState(t *testing.T) {
	store := failingStore{Store: kv.NewMemoryStore()}
	c := newRooms(t, store)
	rev := c.Revision()

	err := c.Add(room{ID: "A", Name: "Alpha"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	_, isRejection := AsRejection(err)
	assert.False(t, isRejection)
	assert.Empty(t, c.Items())
	assert.Equal(t, rev, c.Revision())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := newRooms(t, kv.NewMemoryStore())
	require.NoError(t, c.Add(room{ID: "A", Name: "Alpha"}))

	items := c.Items()
	items[0].Name = "changed"
	got, _ := c.Find("A")
	assert.Equal(t, "Alpha", got.Name)
}

func ids(items []room) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestStoredReportsCorruption(t *testing.T) {
	store := kv.NewMemoryStore()
	c := New(store, roomSchema())

	items, undecoded, err := c.Stored()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, undecoded)

	require.NoError(t, store.Put("rooms", []byte(`[{"id":"A","name":" Alpha "},{"id":7,"name":"Seven"}]`)))
	items, undecoded, err = c.Stored()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, " Alpha ", items[0].Name, "stored values are not normalized")
	require.Len(t, undecoded, 1)
	assert.Equal(t, 1, undecoded[0].Index)
	assert.JSONEq(t, `{"id":7,"name":"Seven"}`, string(undecoded[0].Raw))
	assert.Error(t, undecoded[0].Err)

	require.NoError(t, store.Put("rooms", []byte(`{`)))
	_, _, err = c.Stored()
	assert.Error(t, err)
}

func TestRewrite(t *testing.T) {
	store := kv.NewMemoryStore()
	c := New(store, roomSchema())
	require.NoError(t, store.Put("rooms", []byte(`[{"id":"A","name":" Alpha ","capacity":5}]`)))

	require.NoError(t, c.Rewrite())
	data, err := store.Get("rooms")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"A","name":"Alpha","capacity":5}]`, string(data))

	require.NoError(t, store.Put("rooms", []byte(`garbage`)))
	require.NoError(t, c.Rewrite())
	data, err = store.Get("rooms")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
