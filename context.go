package pmap

//============================================= Operation Context


// opCtx bundles everything a single assoc/without call tree needs besides the node it is
// currently visiting: the host hashing/equality collaborators for keys and values, and the
// generation id authorizing in-place edits. Persistent operations build one with id ==
// persistentMutid; a Transient reuses one opCtx, built once, for every operation it performs
// until it is finalized.
type opCtx[K, V any] struct {
	keys   Hasher[K]
	values Hasher[V]
	id     mutid
}

// hashKey folds the host hash of key down to the engine's internal 32 bit addressing space.
func (c *opCtx[K, V]) hashKey(key K) (int32, error) {
	h, err := c.keys.Hash(key)
	if err != nil { return 0, wrapHashErr("hash", err) }
	return foldHash(h), nil
}

// keysEqual compares two keys via the host collaborator, wrapping any failure.
func (c *opCtx[K, V]) keysEqual(a, b K) (bool, error) {
	eq, err := c.keys.Equal(a, b)
	if err != nil { return false, wrapHashErr("equal", err) }
	return eq, nil
}

// valuesEqual compares two values via the host collaborator, wrapping any failure.
func (c *opCtx[K, V]) valuesEqual(a, b V) (bool, error) {
	eq, err := c.values.Equal(a, b)
	if err != nil { return false, wrapHashErr("equal", err) }
	return eq, nil
}

// editableBitmap returns n itself if it is eligible for in-place edits under c.id, otherwise a
// clone tagged with c.id. Every mutating path that touches a bitmapNode funnels through here
// (or the equivalent editableArray/editableCollision) so the in-place-vs-clone decision is made
// in exactly one place, per the design note in node.go.
func (c *opCtx[K, V]) editableBitmap(n *bitmapNode[K, V]) *bitmapNode[K, V] {
	if eligibleForInplace(n.id, c.id) { return n }
	return cloneBitmap(n, c.id)
}

func (c *opCtx[K, V]) editableArray(n *arrayNode[K, V]) *arrayNode[K, V] {
	if eligibleForInplace(n.id, c.id) { return n }
	return cloneArray(n, c.id)
}

func (c *opCtx[K, V]) editableCollision(n *collisionNode[K, V]) *collisionNode[K, V] {
	if eligibleForInplace(n.id, c.id) { return n }
	return cloneCollision(n, c.id)
}
