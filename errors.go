package pmap

import "errors"
import "fmt"


//============================================= Errors


// ErrKeyNotFound is returned by Lookup and Delete when the requested key is absent from the map.
var ErrKeyNotFound = errors.New("pmap: key not found")

// ErrFinalized is returned by any Transient operation performed after Finish has already been called.
var ErrFinalized = errors.New("pmap: mutation has been finished")

// ErrInvalidSource is returned by Update when the bulk source is not a recognized shape: a Map,
// a map[K]V, or a slice of two-element key/value pairs.
type ErrInvalidSource struct {
	Index  int
	Reason string
}

func (e *ErrInvalidSource) Error() string {
	if e.Index < 0 { return fmt.Sprintf("pmap: cannot convert update source to a sequence of pairs: %s", e.Reason) }
	return fmt.Sprintf("pmap: cannot convert update source element #%d: %s", e.Index, e.Reason)
}

// HashError wraps a failure surfaced by a caller-supplied Hasher. The engine never inspects the
// cause; it only guarantees that no node is published when hashing or comparing a key or value fails.
type HashError struct {
	// Op names the operation that was in progress when the hash or equality check failed, e.g. "hash", "equal".
	Op  string
	Err error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("pmap: %s failed: %s", e.Op, e.Err.Error())
}

func (e *HashError) Unwrap() error { return e.Err }

func wrapHashErr(op string, err error) error {
	if err == nil { return nil }
	log.Error("host", op, "failed:", err.Error())
	return &HashError{Op: op, Err: err}
}

// invariantViolation panics; it marks a point that should be unreachable if the node algebra's
// structural invariants hold. Reaching one means the trie itself is corrupt, not that the caller
// passed bad input, so it is not a recoverable error.
func invariantViolation(msg string) {
	panic("pmap: invariant violation: " + msg)
}
