package pmap

import "fmt"

import "github.com/sirgallo/pmap/internal/murmur"


//============================================= Hasher


// Hasher is the host object model the engine treats as an external collaborator: it supplies the
// hashing and equality operations for a key or value type. The engine never hashes or compares a
// key or value itself; every Hash or Equal call's error is propagated to the caller wrapped in a
// HashError and aborts the operation without publishing any partial state.
//
// A single Hasher[T] instance is shared by every node in a Map and must be safe for concurrent use
// by multiple readers, mirroring the concurrency model of the persistent map itself.
type Hasher[T any] interface {
	// Hash returns a hash of v. Only the low 64 bits are used; the engine folds them to 32 bits
	// internally (see foldHash).
	Hash(v T) (uint64, error)

	// Equal reports whether a and b are the same logical value.
	Equal(a, b T) (bool, error)
}

// comparableHasher is the default Hasher used by NewComparable for any comparable type. It hashes
// by rendering the value to a byte representation and running it through Murmur32 with the fixed
// seed comparableHashSeed; equality falls back to Go's native == operator.
type comparableHasher[T comparable] struct{}

// NewComparableHasher builds a Hasher for any comparable type using Go's native equality operator
// and a Murmur32 hash of the value's byte encoding (see encodeComparable). It is intended for quick
// construction of maps keyed by strings, integers, and other primitive or struct types; callers
// with performance-sensitive key types or custom equality semantics should supply their own Hasher.
func NewComparableHasher[T comparable]() Hasher[T] {
	return comparableHasher[T]{}
}

func (comparableHasher[T]) Hash(v T) (uint64, error) {
	return uint64(murmur.Murmur32(encodeComparable(v), comparableHashSeed)), nil
}

func (comparableHasher[T]) Equal(a, b T) (bool, error) {
	return a == b, nil
}

const comparableHashSeed uint32 = 0x9e3779b9

// encodeComparable renders an arbitrary comparable value to a deterministic byte slice so it can
// be fed through Murmur32. Common key types get a direct, allocation-light encoding; anything else
// falls back to its Go-syntax representation, which is stable across calls within one process for
// the value kinds comparable permits (no pointers-to-maps, no funcs).
func encodeComparable(v any) []byte {
	switch x := v.(type) {
	case string:
		return []byte(x)
	case []byte:
		return x
	case int:
		return encodeComparable(int64(x))
	case int32:
		return encodeComparable(int64(x))
	case int64:
		buf := make([]byte, 8)
		u := uint64(x)
		for i := 0; i < 8; i++ {
			buf[i] = byte(u >> (8 * i))
		}
		return buf
	case uint:
		return encodeComparable(uint64(x))
	case uint32:
		return encodeComparable(uint64(x))
	case uint64:
		buf := make([]byte, 8)
		for i := 0; i < 8; i++ {
			buf[i] = byte(x >> (8 * i))
		}
		return buf
	default:
		return []byte(fmt.Sprintf("%#v", x))
	}
}
