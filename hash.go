package pmap

import "math/bits"


//============================================= Hash Addressing


// hashBits is the number of bits consumed from a hash at each level of the trie. A 5 bit chunk
// gives each Bitmap node a branching factor of 32, which keeps slot arrays small while aligning
// the 7 full levels (plus one terminal Collision level) with a 32 bit hash.
const hashBits = 5

// slotCount is the branching factor of a single trie level: 2^hashBits.
const slotCount = 1 << hashBits

// maxShift is one past the last shift a Bitmap or Array node will ever apply (32 bits / 5 bits a
// level leaves a final partial chunk that Collision nodes absorb instead).
const maxShift = 35

// uncomputedHash is -1, the reference implementation's marker for a root whose structural hash has
// not been computed yet. Map never stores it: Map.Hash memoizes with sync.Once instead, and
// computeHash remaps a structural hash of -1 (compared through errorHash, the same value) to 1.
const uncomputedHash int32 = -1

// errorHash is the value a folded hash is never allowed to take; the reference implementation uses
// -1 to mark a hashing failure. Here a Hasher reports failure through its error result; see foldHash.
const errorHash int32 = -1

// foldHash collapses a host hash wider than 32 bits down to 32 bits by XORing its two halves, the
// same trick used to hash Long values on the JVM. The algorithm is fixed: changing it changes the
// shape of every tree built from it, which would silently break shape-pinned tests. The result -1
// is kept free (errorHash), so a key whose folded hash is genuinely -1 is remapped to -2.
func foldHash(h uint64) int32 {
	folded := int32(uint32(h)) ^ int32(uint32(h>>32))
	if folded == errorHash { return -2 }
	return folded
}

// mask extracts the slotCount-wide slice of hash starting at shift, i.e. the index a Bitmap or
// Array node at this depth would place the key in.
func mask(hash int32, shift uint) uint32 {
	return (uint32(hash) >> shift) & (slotCount - 1)
}

// bitpos turns a slot index into the single set bit that marks it as occupied in a Bitmap node's
// occupancy bitmap.
func bitpos(hash int32, shift uint) uint32 {
	return uint32(1) << mask(hash, shift)
}

// bitindex gives the compressed position of bit within a Bitmap node's slot array: the number of
// occupied slots before it.
func bitindex(bitmap uint32, bit uint32) int {
	return bits.OnesCount32(bitmap & (bit - 1))
}

// popcount is the Hamming weight of a 32 bit occupancy bitmap or Array node presence mask.
func popcount(bitmap uint32) int {
	return bits.OnesCount32(bitmap)
}

// bitShuffle is the avalanche mix CPython's frozenset/immutables map applies to each key and value
// hash before folding it into the order-independent structural hash of a Map. The constants are
// fixed; do not change them without expecting every hash-pinned test to break.
func bitShuffle(h uint32) uint32 {
	return (uint32(h^89869747) ^ (h << 16)) * 3644798167
}

// mixCount folds the element count into a partially accumulated structural hash. computeHash in
// structhash.go calls this once, after XORing in every (key, value) pair's shuffled hash.
func mixCount(acc uint32, count int) uint32 {
	acc ^= (uint32(2*count+1)) * 1927868237
	acc ^= (acc >> 11) ^ (acc >> 25)
	acc = acc*69069 + 907133923
	return acc
}
