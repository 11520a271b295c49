// Package collection implements a list of entities persisted as one value of
// a key-value store, with uniqueness guards and derived query views.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jacksmith/campus/internal/kv"
)

// UniqueKey declares a field whose value must not repeat across the list.
type UniqueKey[T any] struct {
	Field string // name used in rejection messages
	Value func(*T) string
}

// Schema describes one entity type.
type Schema[T any] struct {
	// Key is the storage key holding the whole list.
	Key string
	// Kind names the entity in messages ("course").
	Kind string
	// ID returns the identity of an entity.
	ID func(*T) string
	// Unique lists keys checked on add and update, besides the identity.
	Unique []UniqueKey[T]
	// Normalize, if set, runs on every element after load.
	Normalize func(*T)
	// CanStore, if set, checks an entity about to be added (prev == nil) or
	// to replace prev.
	CanStore func(prev, next *T) Verdict
	// CanRemove, if set, checks an entity about to be removed.
	CanRemove func(*T) Verdict
}

type options struct {
	logger *slog.Logger
}

// Option configures a Collection.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Collection owns the in-memory list of one entity type and writes the whole
// list back to its store after every accepted mutation.
type Collection[T any] struct {
	store  kv.Store
	schema Schema[T]
	logger *slog.Logger
	items  []T
	kept   []Undecoded
	rev    uint64
}

// New returns an empty collection. Call Load to read the stored list.
func New[T any](store kv.Store, schema Schema[T], opts ...Option) *Collection[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Collection[T]{
		store:  store,
		schema: schema,
		logger: o.logger.With("key", schema.Key),
	}
}

// Schema returns the schema the collection was built with.
func (c *Collection[T]) Schema() Schema[T] {
	return c.schema
}

// Undecoded is a stored element that does not decode as the collection's
// entity type, such as a record another page wrote under the same key.
type Undecoded struct {
	Index int // position in the stored list
	Raw   json.RawMessage
	Err   error
}

// Load reads the stored list, replacing the in-memory one, and returns a copy.
// A missing key or a value that is not a list yields an empty list; the
// failure is logged, never returned. Elements that do not decode are left out
// of the list but kept, and every later write puts them back unchanged at
// their stored positions.
func (c *Collection[T]) Load() []T {
	items, undecoded, err := c.decode()
	if err != nil {
		c.logger.Warn("stored value unreadable, using empty list", "error", err)
		items, undecoded = nil, nil
	}
	if len(undecoded) > 0 {
		c.logger.Warn("keeping undecodable elements as stored", "count", len(undecoded),
			"error", undecoded[0].Err)
	}
	if c.schema.Normalize != nil {
		for i := range items {
			c.schema.Normalize(&items[i])
		}
	}
	c.kept = undecoded
	c.items = items
	c.rev++
	return c.Items()
}

// Stored reads the stored list as is, without normalizing it. Unlike Load it
// reports a value that is not a list. A missing key is an empty list.
func (c *Collection[T]) Stored() ([]T, []Undecoded, error) {
	return c.decode()
}

// Rewrite loads the list and persists it again. A value that is not a list is
// reset to an empty one and every element comes back normalized.
func (c *Collection[T]) Rewrite() error {
	return c.Commit(c.Load())
}

// decode reads and parses the stored list one element at a time. A missing key
// is not an error.
func (c *Collection[T]) decode() ([]T, []Undecoded, error) {
	data, err := c.store.Get(c.schema.Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", c.schema.Key, err)
	}
	items := make([]T, 0, len(raws))
	var undecoded []Undecoded
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			undecoded = append(undecoded, Undecoded{Index: i, Raw: raw, Err: err})
			continue
		}
		items = append(items, item)
	}
	return items, undecoded, nil
}

// Persist serializes items, with the undecodable elements of the last Load
// reinserted at their stored positions, and overwrites the stored value.
func (c *Collection[T]) Persist(items []T) error {
	out := make([]any, 0, len(items)+len(c.kept))
	for _, item := range items {
		out = append(out, item)
	}
	for _, u := range c.kept {
		out = slices.Insert(out, min(u.Index, len(out)), any(u.Raw))
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.schema.Key, err)
	}
	if err := c.store.Put(c.schema.Key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.schema.Key, err)
	}
	return nil
}

// Items returns a copy of the in-memory list.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Revision changes every time the in-memory list is loaded or mutated.
func (c *Collection[T]) Revision() uint64 {
	return c.rev
}

// Find returns the entity with the given identity.
func (c *Collection[T]) Find(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Has reports whether an entity with the given identity exists.
func (c *Collection[T]) Has(id string) bool {
	return c.index(id) >= 0
}

func (c *Collection[T]) index(id string) int {
	for i := range c.items {
		if c.schema.ID(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

// CheckUnique runs the uniqueness guards for item, ignoring the entity
// identified by excludeID. An empty excludeID means item is new, in which
// case its identity must not be taken either.
func (c *Collection[T]) CheckUnique(item *T, excludeID string) Verdict {
	if excludeID == "" {
		id := c.schema.ID(item)
		if IsDuplicateKey(c.items, c.schema.ID, c.schema.ID, id, "") {
			return Reject("id", "%s id %q already exists", c.schema.Kind, id)
		}
	}
	for _, u := range c.schema.Unique {
		v := u.Value(item)
		if IsDuplicateKey(c.items, c.schema.ID, u.Value, v, excludeID) {
			return Reject(u.Field, "%s %s %q already exists", c.schema.Kind, u.Field, v)
		}
	}
	return Accept()
}

// Add appends item.
func (c *Collection[T]) Add(item T) error {
	return c.insert(item, false)
}

// Prepend inserts item at the front of the list.
func (c *Collection[T]) Prepend(item T) error {
	return c.insert(item, true)
}

func (c *Collection[T]) insert(item T, front bool) error {
	if v := c.CheckUnique(&item, ""); !v.OK() {
		return c.reject("add", c.schema.ID(&item), v)
	}
	if c.schema.CanStore != nil {
		if v := c.schema.CanStore(nil, &item); !v.OK() {
			return c.reject("add", c.schema.ID(&item), v)
		}
	}

	next := make([]T, 0, len(c.items)+1)
	if front {
		next = append(next, item)
		next = append(next, c.items...)
	} else {
		next = append(next, c.items...)
		next = append(next, item)
	}
	if err := c.Commit(next); err != nil {
		return err
	}
	c.logger.Info("added", "kind", c.schema.Kind, "id", c.schema.ID(&item))
	return nil
}

// Update replaces the entity sharing item's identity.
func (c *Collection[T]) Update(item T) error {
	return c.Replace(c.schema.ID(&item), item)
}

// Replace puts item in place of the entity with the given identity. The
// identity may change as long as no other entity holds the new one.
func (c *Collection[T]) Replace(id string, item T) error {
	i := c.index(id)
	if i < 0 {
		return &NotFoundError{Kind: c.schema.Kind, ID: id}
	}
	if newID := c.schema.ID(&item); newID != id && c.Has(newID) {
		return c.reject("update", id, Reject("id", "%s id %q already exists", c.schema.Kind, newID))
	}
	if v := c.CheckUnique(&item, id); !v.OK() {
		return c.reject("update", id, v)
	}
	if c.schema.CanStore != nil {
		if v := c.schema.CanStore(&c.items[i], &item); !v.OK() {
			return c.reject("update", id, v)
		}
	}

	next := slices.Clone(c.items)
	next[i] = item
	if err := c.Commit(next); err != nil {
		return err
	}
	c.logger.Info("updated", "kind", c.schema.Kind, "id", c.schema.ID(&item))
	return nil
}

// Remove deletes the entity with the given identity and returns it.
func (c *Collection[T]) Remove(id string) (T, error) {
	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, &NotFoundError{Kind: c.schema.Kind, ID: id}
	}
	removed := c.items[i]
	if c.schema.CanRemove != nil {
		if v := c.schema.CanRemove(&removed); !v.OK() {
			return zero, c.reject("remove", id, v)
		}
	}

	next := slices.Delete(slices.Clone(c.items), i, i+1)
	if err := c.Commit(next); err != nil {
		return zero, err
	}
	c.logger.Info("removed", "kind", c.schema.Kind, "id", id)
	return removed, nil
}

// Commit persists next and, only if that succeeds, makes it the in-memory
// list. Guards are the caller's responsibility.
func (c *Collection[T]) Commit(next []T) error {
	if err := c.Persist(next); err != nil {
		return err
	}
	c.items = next
	c.rev++
	return nil
}

func (c *Collection[T]) reject(op, id string, v Verdict) error {
	c.logger.Info("mutation rejected", "op", op, "kind", c.schema.Kind, "id", id,
		"outcome", v.Outcome.String(), "reason", v.Reason)
	return v.Err()
}
