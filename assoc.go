package pmap

//============================================= Assoc Engine


// assoc inserts or replaces a key/value pair reachable from node at the given shift, dispatching
// on node's concrete kind. It returns the (possibly identical) node to stand in for the old one,
// whether a brand new leaf was added (as opposed to an existing key's value being replaced), and
// any host hashing/equality error, which aborts the whole operation without publishing anything.
func (c *opCtx[K, V]) assoc(n node[K, V], shift uint, hash int32, key K, value V) (node[K, V], bool, error) {
	switch self := n.(type) {
	case *bitmapNode[K, V]:
		return c.assocBitmap(self, shift, hash, key, value)
	case *arrayNode[K, V]:
		return c.assocArray(self, shift, hash, key, value)
	case *collisionNode[K, V]:
		return c.assocCollision(self, shift, hash, key, value)
	default:
		invariantViolation("unknown node kind in assoc")
		return nil, false, nil
	}
}

// assocBitmap implements §4.3's Bitmap node rules.
func (c *opCtx[K, V]) assocBitmap(self *bitmapNode[K, V], shift uint, hash int32, key K, value V) (node[K, V], bool, error) {
	bit := bitpos(hash, shift)
	idx := bitindex(self.bitmap, bit)

	if self.bitmap&bit == 0 {
		// The slot is unoccupied: either grow this Bitmap node, or promote to an Array node
		// once occupancy would exceed 16.
		n := popcount(self.bitmap)
		if n >= 16 {
			return c.promote(self, shift, hash, key, value)
		}

		slots := insertSlot(self.slots, idx, newLeafEntry(key, value))
		return &bitmapNode[K, V]{id: c.id, bitmap: self.bitmap | bit, slots: slots}, true, nil
	}

	slot := self.slots[idx]
	if !slot.isLeaf {
		// Slot holds a subtree; recurse and splice the result back in if it changed.
		child, added, err := c.assoc(slot.child, shift+hashBits, hash, key, value)
		if err != nil { return nil, false, err }
		if same(child, slot.child) { return self, added, nil }

		target := c.editableBitmap(self)
		target.slots[idx] = newChildEntry(child)
		return target, added, nil
	}

	eq, err := c.keysEqual(slot.key, key)
	if err != nil { return nil, false, err }

	if eq {
		veq, err := c.valuesEqual(slot.value, value)
		if err != nil { return nil, false, err }
		if veq { return self, false, nil }

		target := c.editableBitmap(self)
		target.slots[idx] = newLeafEntry(key, value)
		return target, false, nil
	}

	// Two distinct keys land in the same slot: split into a subtree one level deeper.
	sub, err := c.split(shift+hashBits, slot.key, slot.value, hash, key, value)
	if err != nil { return nil, false, err }

	target := c.editableBitmap(self)
	target.slots[idx] = newChildEntry(sub)
	return target, true, nil
}

// split builds the replacement subtree for two keys that collided in the same Bitmap slot:
// a Collision node if their full 32 bit hashes are equal, otherwise a fresh Bitmap assoc'd with
// both in turn.
func (c *opCtx[K, V]) split(shift uint, existingKey K, existingValue V, newHash int32, newKey K, newValue V) (node[K, V], error) {
	existingHash, err := c.hashKey(existingKey)
	if err != nil { return nil, err }

	if existingHash == newHash {
		return &collisionNode[K, V]{
			id:   c.id,
			hash: existingHash,
			entries: []pair[K, V]{
				{key: existingKey, value: existingValue},
				{key: newKey, value: newValue},
			},
		}, nil
	}

	empty := node[K, V](newEmptyBitmap[K, V](c.id))
	withExisting, _, err := c.assoc(empty, shift, existingHash, existingKey, existingValue)
	if err != nil { return nil, err }

	withBoth, _, err := c.assoc(withExisting, shift, newHash, newKey, newValue)
	if err != nil { return nil, err }

	return withBoth, nil
}

// promote converts a full (16-slot) Bitmap node into an Array node with room for one more child,
// per §4.3 rule 2. Every existing leaf is rehashed (using the same host hash function) and
// re-associated into a fresh per-slice Bitmap child; subtree slots move across unchanged.
func (c *opCtx[K, V]) promote(self *bitmapNode[K, V], shift uint, hash int32, key K, value V) (node[K, V], bool, error) {
	n := popcount(self.bitmap)
	log.Debug("promoting bitmap node to array at shift:", shift)
	array := &arrayNode[K, V]{id: c.id, count: n + 1}

	newIdx := mask(hash, shift)
	empty := node[K, V](newEmptyBitmap[K, V](c.id))
	placed, _, err := c.assoc(empty, shift+hashBits, hash, key, value)
	if err != nil { return nil, false, err }
	array.children[newIdx] = placed

	j := 0
	for i := 0; i < slotCount; i++ {
		if self.bitmap&(1<<uint(i)) == 0 { continue }

		slot := self.slots[j]
		if !slot.isLeaf {
			array.children[i] = slot.child
		} else {
			rehash, err := c.hashKey(slot.key)
			if err != nil { return nil, false, err }

			childEmpty := node[K, V](newEmptyBitmap[K, V](c.id))
			child, _, err := c.assoc(childEmpty, shift+hashBits, rehash, slot.key, slot.value)
			if err != nil { return nil, false, err }
			array.children[i] = child
		}
		j++
	}

	return array, true, nil
}

// assocArray implements §4.3's Array node rules.
func (c *opCtx[K, V]) assocArray(self *arrayNode[K, V], shift uint, hash int32, key K, value V) (node[K, V], bool, error) {
	idx := mask(hash, shift)
	child := self.children[idx]

	if child == nil {
		empty := node[K, V](newEmptyBitmap[K, V](c.id))
		leaf, added, err := c.assoc(empty, shift+hashBits, hash, key, value)
		if err != nil { return nil, false, err }

		target := c.editableArray(self)
		target.count++
		target.children[idx] = leaf
		return target, added, nil
	}

	updated, added, err := c.assoc(child, shift+hashBits, hash, key, value)
	if err != nil { return nil, false, err }
	if same(updated, child) { return self, added, nil }

	target := c.editableArray(self)
	target.children[idx] = updated
	return target, added, nil
}

// assocCollision implements §4.3's Collision node rules.
func (c *opCtx[K, V]) assocCollision(self *collisionNode[K, V], shift uint, hash int32, key K, value V) (node[K, V], bool, error) {
	if hash != self.hash {
		// A non-colliding key was pushed down to this level; wrap the Collision node in a
		// fresh Bitmap at this shift and retry the assoc through it.
		wrapper := &bitmapNode[K, V]{
			id:     c.id,
			bitmap: bitpos(self.hash, shift),
			slots:  []entry[K, V]{newChildEntry[K, V](self)},
		}
		return c.assocBitmap(wrapper, shift, hash, key, value)
	}

	for i, existing := range self.entries {
		eq, err := c.keysEqual(existing.key, key)
		if err != nil { return nil, false, err }
		if !eq { continue }

		veq, err := c.valuesEqual(existing.value, value)
		if err != nil { return nil, false, err }
		if veq { return self, false, nil }

		target := c.editableCollision(self)
		target.entries[i] = pair[K, V]{key: key, value: value}
		return target, false, nil
	}

	entries := make([]pair[K, V], len(self.entries)+1)
	copy(entries, self.entries)
	entries[len(self.entries)] = pair[K, V]{key: key, value: value}
	return &collisionNode[K, V]{id: c.id, hash: self.hash, entries: entries}, true, nil
}

// same reports whether a and b are the identical node value, used to short-circuit a clone when a
// recursive assoc/without made no change to a subtree.
func same[K, V any](a, b node[K, V]) bool {
	switch x := a.(type) {
	case *bitmapNode[K, V]:
		y, ok := b.(*bitmapNode[K, V])
		return ok && x == y
	case *arrayNode[K, V]:
		y, ok := b.(*arrayNode[K, V])
		return ok && x == y
	case *collisionNode[K, V]:
		y, ok := b.(*collisionNode[K, V])
		return ok && x == y
	default:
		return false
	}
}
