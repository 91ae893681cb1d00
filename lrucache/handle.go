package lrucache

// Deleter is invoked exactly once per entry, once the cache no longer
// tracks it and every outstanding Handle has been released.
type Deleter func(key Key, value any)

// entry is a single cache slot. It is addressed by normal Go pointers
// (option (b) of the §9 Design Note: shared ownership with interior-mutable
// list links, rather than an index arena) and every field below is mutated
// only while its owning shard's mutex is held, so refs is a plain counter
// rather than an atomic.
type entry struct {
	key     Key
	value   any
	deleter Deleter
	charge  int64
	hash    uint32

	refs    int32
	inCache bool

	// next_hash: chain link inside the shard's hashtable bucket.
	nextHash *entry

	// Circular doubly-linked membership in exactly one of {lru, inUse}.
	prev *entry
	next *entry
}

// Handle is an opaque reference to a live entry. Callers must never inspect
// it; Value and Release are the only valid operations on it.
type Handle struct {
	e *entry
}

// Valid reports whether h refers to a real entry (as opposed to a miss).
func (h Handle) Valid() bool { return h.e != nil }
