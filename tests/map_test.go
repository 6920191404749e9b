package pmaptests

import "fmt"
import "testing"

import "github.com/sirgallo/pmap"


func TestMap(t *testing.T) {
	t.Run("Test Set And Lookup", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()

		m1, setErr := m0.Set("a", 1)
		if setErr != nil { t.Errorf("error setting key: %s", setErr.Error()) }

		val, lookupErr := m1.Lookup("a")
		if lookupErr != nil { t.Errorf("error looking up key: %s", lookupErr.Error()) }

		t.Logf("actual: %d, expected: %d", val, 1)
		if val != 1 { t.Errorf("val does not match expected: actual(%d), expected(%d)", val, 1) }

		if m1.Len() != 1 { t.Errorf("expected len 1, got %d", m1.Len()) }
	})

	t.Run("Test Idempotent Set Returns Same Pointer", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()
		m1, _ := m0.Set("a", 1)

		existing, getErr := m1.Get("a", 0)
		if getErr != nil { t.Errorf("error getting key: %s", getErr.Error()) }

		m2, setErr := m1.Set("a", existing)
		if setErr != nil { t.Errorf("error re-setting key: %s", setErr.Error()) }

		if m2 != m1 { t.Errorf("expected set(m, k, lookup(m, k)) to return the identical map pointer") }
	})

	t.Run("Test Set Replaces Value And Preserves Count", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()
		m1, _ := m0.Set("a", 1)
		m2, setErr := m1.Set("a", 2)
		if setErr != nil { t.Errorf("error replacing key: %s", setErr.Error()) }

		val, _ := m2.Lookup("a")
		if val != 2 { t.Errorf("val does not match expected: actual(%d), expected(%d)", val, 2) }
		if m2.Len() != 1 { t.Errorf("expected len 1 after replace, got %d", m2.Len()) }
	})

	t.Run("Test Delete", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()
		m1, _ := m0.Set("a", 1)
		m1, _ = m1.Set("b", 2)

		m2, delErr := m1.Delete("a")
		if delErr != nil { t.Errorf("error deleting key: %s", delErr.Error()) }

		if m2.Len() != 1 { t.Errorf("expected len 1, got %d", m2.Len()) }

		val, _ := m2.Lookup("b")
		if val != 2 { t.Errorf("val does not match expected: actual(%d), expected(%d)", val, 2) }

		contains, containsErr := m2.Contains("a")
		if containsErr != nil { t.Errorf("error checking contains: %s", containsErr.Error()) }
		if contains { t.Errorf("expected deleted key to be absent") }
	})

	t.Run("Test Delete Missing Key Returns ErrKeyNotFound", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()
		_, delErr := m0.Delete("missing")
		if delErr != pmap.ErrKeyNotFound {
			t.Errorf("expected ErrKeyNotFound, got %v", delErr)
		}
	})

	t.Run("Test Lookup Missing Key Returns ErrKeyNotFound", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()
		_, lookupErr := m0.Lookup("missing")
		if lookupErr != pmap.ErrKeyNotFound {
			t.Errorf("expected ErrKeyNotFound, got %v", lookupErr)
		}
	})

	t.Run("Test Delete After Set Of Absent Key Restores Equal Map", func(t *testing.T) {
		m := pmap.NewComparable[string, int]()
		m, _ = m.Set("a", 1)

		withExtra, _ := m.Set("b", 2)
		withoutExtra, delErr := withExtra.Delete("b")
		if delErr != nil { t.Errorf("error deleting key: %s", delErr.Error()) }

		eq, eqErr := withoutExtra.Equal(m)
		if eqErr != nil { t.Errorf("error comparing maps: %s", eqErr.Error()) }
		if !eq { t.Errorf("expected delete(set(m, k, v), k) to equal m") }
	})

	t.Run("Test Persistence Across Set", func(t *testing.T) {
		m0 := pmap.NewComparable[string, int]()
		m1, _ := m0.Set("a", 1)
		_, _ = m1.Set("a", 2)

		val, _ := m1.Lookup("a")
		if val != 1 { t.Errorf("expected m1 unchanged by a later Set on m1: actual(%d), expected(%d)", val, 1) }
	})

	t.Run("Test Iteration Yields Every Pair Exactly Once", func(t *testing.T) {
		m := pmap.NewComparable[int, int]()
		for i := 0; i < 200; i++ {
			var setErr error
			m, setErr = m.Set(i, i*i)
			if setErr != nil { t.Errorf("error setting key %d: %s", i, setErr.Error()) }
		}

		seen := make(map[int]bool)
		it := m.Iterator()
		count := 0
		for it.Next() {
			count++
			if seen[it.Key()] { t.Errorf("key %d yielded more than once", it.Key()) }
			seen[it.Key()] = true

			if it.Value() != it.Key()*it.Key() {
				t.Errorf("unexpected value for key %d: actual(%d), expected(%d)", it.Key(), it.Value(), it.Key()*it.Key())
			}
		}

		t.Logf("actual count: %d, expected count: %d", count, m.Len())
		if count != m.Len() { t.Errorf("iteration count does not match Len: actual(%d), expected(%d)", count, m.Len()) }
	})

	t.Run("Test Structural Equality Independent Of Construction Order", func(t *testing.T) {
		a := pmap.NewComparable[int, string]()
		b := pmap.NewComparable[int, string]()

		order1 := []int{5, 3, 1, 4, 2}
		order2 := []int{1, 2, 3, 4, 5}

		for _, k := range order1 { a, _ = a.Set(k, fmt.Sprintf("v%d", k)) }
		for _, k := range order2 { b, _ = b.Set(k, fmt.Sprintf("v%d", k)) }

		eq, eqErr := a.Equal(b)
		if eqErr != nil { t.Errorf("error comparing maps: %s", eqErr.Error()) }
		if !eq { t.Errorf("expected maps built from different insertion orders to be structurally equal") }

		hashA, hashErrA := a.Hash()
		hashB, hashErrB := b.Hash()
		if hashErrA != nil || hashErrB != nil { t.Errorf("error hashing maps") }

		t.Logf("hashA: %d, hashB: %d", hashA, hashB)
		if hashA != hashB { t.Errorf("expected equal maps to have equal hashes: a(%d), b(%d)", hashA, hashB) }
	})

	t.Run("Test Bulk Update From Native Map", func(t *testing.T) {
		m := pmap.NewComparable[string, int]()
		source := map[string]int{"a": 1, "b": 2, "c": 3}

		updated, updateErr := m.Update(source)
		if updateErr != nil { t.Errorf("error updating map: %s", updateErr.Error()) }

		if updated.Len() != 3 { t.Errorf("expected len 3, got %d", updated.Len()) }
		for k, v := range source {
			val, lookupErr := updated.Lookup(k)
			if lookupErr != nil { t.Errorf("error looking up key %s: %s", k, lookupErr.Error()) }
			if val != v { t.Errorf("val does not match expected for key %s: actual(%d), expected(%d)", k, val, v) }
		}
	})

	t.Run("Test Bulk Update From Entry Slice And Another Map", func(t *testing.T) {
		m := pmap.NewComparable[string, int]()
		entries := []pmap.Entry[string, int]{{Key: "x", Value: 10}, {Key: "y", Value: 20}}

		updated, updateErr := m.Update(entries)
		if updateErr != nil { t.Errorf("error updating from entry slice: %s", updateErr.Error()) }
		if updated.Len() != 2 { t.Errorf("expected len 2, got %d", updated.Len()) }

		fromMap, updateErr2 := pmap.NewComparable[string, int]().Update(updated)
		if updateErr2 != nil { t.Errorf("error updating from another map: %s", updateErr2.Error()) }

		eq, eqErr := fromMap.Equal(updated)
		if eqErr != nil { t.Errorf("error comparing maps: %s", eqErr.Error()) }
		if !eq { t.Errorf("expected map-sourced update to equal its source") }
	})

	t.Run("Test Update With Invalid Source", func(t *testing.T) {
		m := pmap.NewComparable[string, int]()
		_, updateErr := m.Update(42)

		var invalidSource *pmap.ErrInvalidSource
		if updateErr == nil { t.Errorf("expected an error for an invalid update source") }
		if ok := asInvalidSource(updateErr, &invalidSource); !ok {
			t.Errorf("expected ErrInvalidSource, got %T: %v", updateErr, updateErr)
		}
	})
}

func asInvalidSource(err error, target **pmap.ErrInvalidSource) bool {
	if e, ok := err.(*pmap.ErrInvalidSource); ok {
		*target = e
		return true
	}
	return false
}
