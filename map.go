package pmap

import "sync"
import "sync/atomic"

//============================================= Map


// mutidCounter hands out ever-increasing generation ids to Transients. 0 is reserved for
// persistent operations (persistentMutid), so the first Transient created in a process gets 1.
var mutidCounter uint64

func nextMutid() mutid {
	return mutid(atomic.AddUint64(&mutidCounter, 1))
}

// Entry is a single key/value pair, used as the element type of a bulk Update source and returned
// by Items.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Map is an immutable, persistent associative map from K to V, implemented as a hash array mapped
// trie. Every mutating operation (Set, Delete, Update) returns a new Map that shares whatever
// structure the edit did not touch with its predecessor; the receiver is always left untouched and
// safe to keep using from any number of goroutines. Construct one with New or NewComparable.
type Map[K, V any] struct {
	root   node[K, V]
	count  int
	keys   Hasher[K]
	values Hasher[V]

	hashOnce sync.Once
	hashVal  uint32
	hashErr  error
}

// New builds an empty Map using the supplied Hashers for keys and values.
func New[K, V any](keys Hasher[K], values Hasher[V]) *Map[K, V] {
	return &Map[K, V]{
		root:   newEmptyBitmap[K, V](persistentMutid),
		count:  0,
		keys:   keys,
		values: values,
	}
}

// NewComparable builds an empty Map keyed and valued by Go's native comparable types, using
// NewComparableHasher for both. It is a convenience for the common case; callers needing custom
// hashing or equality semantics should use New directly.
func NewComparable[K comparable, V comparable]() *Map[K, V] {
	return New[K, V](NewComparableHasher[K](), NewComparableHasher[V]())
}

func (m *Map[K, V]) ctx() opCtx[K, V] {
	return opCtx[K, V]{keys: m.keys, values: m.values, id: persistentMutid}
}

// Len returns the number of key/value pairs in the map.
func (m *Map[K, V]) Len() int { return m.count }

// Contains reports whether key is present in the map.
func (m *Map[K, V]) Contains(key K) (bool, error) {
	c := m.ctx()
	hash, err := c.hashKey(key)
	if err != nil { return false, err }

	_, ok, err := c.find(m.root, 0, hash, key)
	return ok, err
}

// Get returns the value associated with key, or fallback if key is absent.
func (m *Map[K, V]) Get(key K, fallback V) (V, error) {
	c := m.ctx()
	hash, err := c.hashKey(key)
	if err != nil { return fallback, err }

	value, ok, err := c.find(m.root, 0, hash, key)
	if err != nil { return fallback, err }
	if !ok { return fallback, nil }
	return value, nil
}

// Lookup returns the value associated with key, or ErrKeyNotFound if key is absent.
func (m *Map[K, V]) Lookup(key K) (V, error) {
	var zero V

	c := m.ctx()
	hash, err := c.hashKey(key)
	if err != nil { return zero, err }

	value, ok, err := c.find(m.root, 0, hash, key)
	if err != nil { return zero, err }
	if !ok { return zero, ErrKeyNotFound }
	return value, nil
}

// Set returns a new Map with key bound to value, leaving the receiver unchanged. If key already
// maps to a value equal to value, Set returns the receiver itself without allocating.
func (m *Map[K, V]) Set(key K, value V) (*Map[K, V], error) {
	c := m.ctx()
	hash, err := c.hashKey(key)
	if err != nil { return nil, err }

	root, added, err := c.assoc(m.root, 0, hash, key, value)
	if err != nil { return nil, err }
	if same(root, m.root) { return m, nil }

	count := m.count
	if added { count++ }
	return &Map[K, V]{root: root, count: count, keys: m.keys, values: m.values}, nil
}

// Delete returns a new Map with key removed, leaving the receiver unchanged. It returns
// ErrKeyNotFound if key is not present.
func (m *Map[K, V]) Delete(key K) (*Map[K, V], error) {
	c := m.ctx()
	hash, err := c.hashKey(key)
	if err != nil { return nil, err }

	root, removed, err := c.without(m.root, 0, hash, key)
	if err != nil { return nil, err }
	if !removed { return nil, ErrKeyNotFound }

	return &Map[K, V]{root: root, count: m.count - 1, keys: m.keys, values: m.values}, nil
}

// Mutate returns a Transient mutation handle seeded from the receiver's current contents. The
// Transient may be edited with many Set/Delete/Update calls far cheaper than the equivalent chain
// of persistent calls would be, then converted back with Finish.
func (m *Map[K, V]) Mutate() *Transient[K, V] {
	return &Transient[K, V]{
		root:  m.root,
		count: m.count,
		ctx:   opCtx[K, V]{keys: m.keys, values: m.values, id: nextMutid()},
	}
}

// Iterator returns an Iterator over the map's pairs.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(m.root)
}

// Keys returns every key in the map, in the Iterator's traversal order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.count)
	it := m.Iterator()
	for it.Next() { out = append(out, it.Key()) }
	return out
}

// Values returns every value in the map, in the Iterator's traversal order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, m.count)
	it := m.Iterator()
	for it.Next() { out = append(out, it.Value()) }
	return out
}

// Items returns every key/value pair in the map, in the Iterator's traversal order.
func (m *Map[K, V]) Items() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.count)
	it := m.Iterator()
	for it.Next() { out = append(out, Entry[K, V]{Key: it.Key(), Value: it.Value()}) }
	return out
}
