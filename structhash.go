package pmap

//============================================= Structural Hash


// Hash returns a structural hash of the map: order independent, equal for any two Maps that
// Equal reports equal, computed once and memoized for the lifetime of this Map value (a fresh Map
// produced by Set/Delete/Update gets its own unmemoized slot). Every key and value hash is folded
// and avalanche-mixed with bitShuffle, XORed into a running accumulator so element order cannot
// affect the result, then the element count is folded in last with mixCount so that two maps whose
// pair contributions XOR to the same accumulator but which hold different numbers of pairs still
// hash differently.
func (m *Map[K, V]) Hash() (uint32, error) {
	m.hashOnce.Do(func() {
		m.hashVal, m.hashErr = m.computeHash()
	})
	return m.hashVal, m.hashErr
}

func (m *Map[K, V]) computeHash() (uint32, error) {
	c := m.ctx()

	var acc uint32
	it := m.Iterator()
	for it.Next() {
		keyHash, err := c.hashKey(it.Key())
		if err != nil { return 0, err }

		rawValueHash, err := c.values.Hash(it.Value())
		if err != nil { return 0, wrapHashErr("hash", err) }
		valueHash := foldHash(rawValueHash)

		acc ^= bitShuffle(uint32(keyHash)) ^ bitShuffle(uint32(valueHash))
	}

	acc = mixCount(acc, m.count)
	if int32(acc) == errorHash { acc = 1 }
	return acc, nil
}
