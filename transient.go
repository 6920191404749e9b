package pmap

//============================================= Transient


// Transient is an in-place mutation handle obtained from Map.Mutate. Every Set, Delete, or Update
// performed through it edits its own private generation of nodes directly instead of cloning, which
// makes a long chain of edits far cheaper than the equivalent sequence of persistent Map calls.
// Nothing else in the process can observe a Transient's intermediate states; the only way to get a
// persistent Map back out is Finish, which also invalidates the handle. A Transient is not safe for
// concurrent use by multiple goroutines, unlike the persistent Maps it produces.
type Transient[K, V any] struct {
	root      node[K, V]
	count     int
	ctx       opCtx[K, V]
	finalized bool
	scratch   *slicePool[Entry[K, V]]
}

// Len returns the number of key/value pairs currently held by the transient.
func (t *Transient[K, V]) Len() int { return t.count }

// Contains reports whether key is present.
func (t *Transient[K, V]) Contains(key K) (bool, error) {
	if t.finalized { return false, ErrFinalized }

	hash, err := t.ctx.hashKey(key)
	if err != nil { return false, err }

	_, ok, err := t.ctx.find(t.root, 0, hash, key)
	return ok, err
}

// Get returns the value bound to key, or fallback if key is absent.
func (t *Transient[K, V]) Get(key K, fallback V) (V, error) {
	if t.finalized { return fallback, ErrFinalized }

	hash, err := t.ctx.hashKey(key)
	if err != nil { return fallback, err }

	value, ok, err := t.ctx.find(t.root, 0, hash, key)
	if err != nil { return fallback, err }
	if !ok { return fallback, nil }
	return value, nil
}

// Set binds key to value in place, returning whether a brand new key was added.
func (t *Transient[K, V]) Set(key K, value V) (bool, error) {
	if t.finalized { return false, ErrFinalized }

	hash, err := t.ctx.hashKey(key)
	if err != nil { return false, err }

	root, added, err := t.ctx.assoc(t.root, 0, hash, key, value)
	if err != nil { return false, err }

	t.root = root
	if added { t.count++ }
	return added, nil
}

// Delete removes key in place. It returns ErrKeyNotFound if key is not present.
func (t *Transient[K, V]) Delete(key K) error {
	if t.finalized { return ErrFinalized }

	hash, err := t.ctx.hashKey(key)
	if err != nil { return err }

	root, removed, err := t.ctx.without(t.root, 0, hash, key)
	if err != nil { return err }
	if !removed { return ErrKeyNotFound }

	t.root = root
	t.count--
	return nil
}

// Pop removes key in place if present and returns its former value, reporting false instead of
// ErrKeyNotFound when the key was absent.
func (t *Transient[K, V]) Pop(key K) (V, bool, error) {
	var zero V
	if t.finalized { return zero, false, ErrFinalized }

	hash, err := t.ctx.hashKey(key)
	if err != nil { return zero, false, err }

	value, ok, err := t.ctx.find(t.root, 0, hash, key)
	if err != nil { return zero, false, err }
	if !ok { return zero, false, nil }

	root, removed, err := t.ctx.without(t.root, 0, hash, key)
	if err != nil { return zero, false, err }
	if !removed { invariantViolation("find hit but without missed") }

	t.root = root
	t.count--
	return value, true, nil
}

// Update applies every pair from source in place; see Map.Update for the accepted source shapes.
func (t *Transient[K, V]) Update(source any) error {
	if t.finalized { return ErrFinalized }

	entries, err := t.collectEntries(source)
	if err != nil { return err }
	if _, callerOwned := source.([]Entry[K, V]); !callerOwned { defer t.scratch.put(entries) }

	for _, e := range entries {
		if _, err := t.Set(e.Key, e.Value); err != nil { return err }
	}
	return nil
}

func (t *Transient[K, V]) collectEntries(source any) ([]Entry[K, V], error) {
	if t.scratch == nil { t.scratch = newSlicePool[Entry[K, V]]() }

	switch src := source.(type) {
	case *Map[K, V]:
		out := t.scratch.get()
		it := src.Iterator()
		for it.Next() { out = append(out, Entry[K, V]{Key: it.Key(), Value: it.Value()}) }
		return out, nil
	case map[K]V:
		out := t.scratch.get()
		for k, v := range src { out = append(out, Entry[K, V]{Key: k, Value: v}) }
		return out, nil
	case []Entry[K, V]:
		return src, nil
	default:
		return nil, &ErrInvalidSource{Index: -1, Reason: "source must be a *Map, map[K]V, or []Entry[K, V]"}
	}
}

// Finish ends the transient's mutation session and returns its contents as a persistent Map. The
// Transient must not be used again; every further call returns ErrFinalized.
func (t *Transient[K, V]) Finish() (*Map[K, V], error) {
	if t.finalized { return nil, ErrFinalized }

	t.finalized = true

	return &Map[K, V]{root: t.root, count: t.count, keys: t.ctx.keys, values: t.ctx.values}, nil
}
