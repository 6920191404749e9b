package pmap

//============================================= Structural Equality


// Equal reports whether m and other hold the same set of key/value pairs, independent of the
// shape either trie happens to have taken on to get there (insertion order, intermediate deletes,
// and Transient-vs-persistent history never affect the result). Two Maps with different element
// counts are unequal without inspecting a single pair; otherwise every pair in m is looked up in
// other and compared with other's value Hasher.
func (m *Map[K, V]) Equal(other *Map[K, V]) (bool, error) {
	if m == other { return true, nil }
	if m.count != other.count { return false, nil }

	otherCtx := other.ctx()
	it := m.Iterator()
	for it.Next() {
		hash, err := otherCtx.hashKey(it.Key())
		if err != nil { return false, err }

		value, ok, err := otherCtx.find(other.root, 0, hash, it.Key())
		if err != nil { return false, err }
		if !ok { return false, nil }

		veq, err := otherCtx.valuesEqual(value, it.Value())
		if err != nil { return false, err }
		if !veq { return false, nil }
	}
	return true, nil
}
