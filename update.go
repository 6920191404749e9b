package pmap

//============================================= Bulk Update


// Update returns a new Map with every pair from source applied on top of the receiver, leaving the
// receiver unchanged. source must be one of *Map[K, V], map[K]V, or []Entry[K, V]; anything else
// yields an ErrInvalidSource. Internally this is a single Transient session, so updating from a
// large source is far cheaper than the equivalent chain of persistent Set calls.
func (m *Map[K, V]) Update(source any) (*Map[K, V], error) {
	t := m.Mutate()
	if err := t.Update(source); err != nil { return nil, err }
	return t.Finish()
}
