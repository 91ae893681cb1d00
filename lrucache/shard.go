package lrucache

import (
	"sync"

	"github.com/guancheng-lai/leveldb-ACKey/internal/util"
)

// ghostRecorder is the subset of ShardedLRU that LRUShard needs to record an
// evicted key into a ghost cache. It is satisfied by *ShardedLRU; keeping it
// as a narrow interface avoids an import cycle between shard.go and
// sharded.go's higher-level routing.
type ghostRecorder interface {
	insertGhostCharge(key Key, hash uint32, charge int64)
}

// LRUShard is one independently-locked partition of a ShardedLRU: a mutex,
// a capacity/usage budget, a hand-rolled hash table, and two-list (in-use /
// LRU) bookkeeping. It is a direct translation of LevelDB's util/cache.cc
// LRUCache class, one shard holding its own mutex+table+intrusive-list
// triple rather than a single cache-wide lock.
type LRUShard struct {
	mu sync.Mutex

	capacity int64
	usage    int64

	table *hashTable

	// Sentinels of two empty circular lists. lru.next is oldest, lru.prev is
	// newest (append at prev, evict from next). inUse holds entries with at
	// least one outstanding client handle, in no particular order.
	lru   entry
	inUse entry

	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
	evicts util.PaddedAtomicInt64
}

// NewLRUShard constructs an empty shard with the given capacity (in charge
// units). A capacity of 0 disables caching: Insert still returns a live
// handle, but it is dropped by the cache as soon as the caller Releases it.
func NewLRUShard(capacity int64) *LRUShard {
	s := &LRUShard{capacity: capacity, table: newHashTable()}
	s.lru.next, s.lru.prev = &s.lru, &s.lru
	s.inUse.next, s.inUse.prev = &s.inUse, &s.inUse
	return s
}

// listAppend makes e the newest entry of list (inserted just before the
// sentinel, i.e. at list.prev).
func listAppend(list, e *entry) {
	e.next = list
	e.prev = list.prev
	e.prev.next = e
	e.next.prev = e
}

func listRemove(e *entry) {
	e.next.prev = e.prev
	e.prev.next = e.next
}

// ref increments e's refcount, promoting it from the LRU list to the in-use
// list if the cache was its sole holder.
func (s *LRUShard) ref(e *entry) {
	if e.refs == 1 && e.inCache {
		listRemove(e)
		listAppend(&s.inUse, e)
	}
	e.refs++
}

// unref decrements e's refcount. It returns a deleter thunk to invoke once
// the caller has released s.mu: deferring the deleter call this way avoids
// re-entrancy between a client callback and this shard's lock. Returns nil
// if nothing needs to be finalized yet.
func (s *LRUShard) unref(e *entry) func() {
	e.refs--
	switch {
	case e.refs < 0:
		panic("lrucache: refcount underflow; double Release or foreign handle")
	case e.refs == 0:
		if e.inCache {
			panic("lrucache: entry still in_cache at refs==0")
		}
		key, value, deleter := e.key, e.value, e.deleter
		if deleter == nil {
			return nil
		}
		return func() { deleter(key, value) }
	case e.inCache && e.refs == 1:
		listRemove(e)
		listAppend(&s.lru, e)
	}
	return nil
}

// finishErase detaches e (already unlinked from the hash table by the
// caller) from whichever list it's on, clears in_cache, subtracts its
// charge from usage, and drops the cache's reference.
func (s *LRUShard) finishErase(e *entry) func() {
	if e == nil {
		return nil
	}
	listRemove(e)
	e.inCache = false
	s.usage -= e.charge
	return s.unref(e)
}

// Insert records key->value with the given charge, evicting LRU entries
// (oldest first) until usage fits capacity. ghost, if non-nil, receives the
// charge of every entry this call evicts, keyed by the evicted entry's key
// — the ghost-aware InsertARC path.
func (s *LRUShard) Insert(key Key, value any, charge int64, deleter Deleter, ghost ghostRecorder) Handle {
	s.mu.Lock()

	e := &entry{key: key.clone(), value: value, deleter: deleter, charge: charge, hash: key.Hash(), refs: 1}

	var finalizers []func()
	if s.capacity > 0 {
		e.refs++
		e.inCache = true
		listAppend(&s.inUse, e)
		s.usage += charge
		if fn := s.finishErase(s.table.insert(e)); fn != nil {
			finalizers = append(finalizers, fn)
		}
	}

	for s.usage > s.capacity && s.lru.next != &s.lru {
		old := s.lru.next
		if ghost != nil {
			ghost.insertGhostCharge(old.key, old.hash, old.charge)
		}
		removed := s.table.remove(old.key, old.hash)
		if removed != old {
			panic("lrucache: LRU entry missing from hash table")
		}
		s.evicts.Add(1)
		if fn := s.finishErase(removed); fn != nil {
			finalizers = append(finalizers, fn)
		}
	}

	s.mu.Unlock()
	for _, fn := range finalizers {
		fn()
	}
	return Handle{e: e}
}

// Lookup returns a Handle for key, or a zero Handle on a miss.
func (s *LRUShard) Lookup(key Key, hash uint32) (Handle, bool) {
	s.mu.Lock()
	e := s.table.lookup(key, hash)
	if e != nil {
		s.ref(e)
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	s.mu.Unlock()
	if e == nil {
		return Handle{}, false
	}
	return Handle{e: e}, true
}

// Release relinquishes the caller's reference to h's entry.
func (s *LRUShard) Release(h Handle) {
	s.mu.Lock()
	fn := s.unref(h.e)
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Value returns the value stored in h's entry.
func (s *LRUShard) Value(h Handle) any {
	return h.e.value
}

// Erase drops the cache's own reference to key, if present. Outstanding
// client handles remain valid until released.
func (s *LRUShard) Erase(key Key, hash uint32) {
	s.mu.Lock()
	fn := s.finishErase(s.table.remove(key, hash))
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Prune evicts every entry currently on the LRU list (i.e. every entry with
// no outstanding client handle).
func (s *LRUShard) Prune() {
	s.mu.Lock()
	var finalizers []func()
	for s.lru.next != &s.lru {
		e := s.lru.next
		if e.refs != 1 {
			panic("lrucache: LRU list entry with refs != 1")
		}
		removed := s.table.remove(e.key, e.hash)
		if fn := s.finishErase(removed); fn != nil {
			finalizers = append(finalizers, fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range finalizers {
		fn()
	}
}

// TotalCharge returns the shard's current usage under lock.
func (s *LRUShard) TotalCharge() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

// Capacity returns the shard's current capacity under lock.
func (s *LRUShard) Capacity() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity
}

// AdjustCapacity adds delta to the shard's capacity. It never proactively
// evicts; over-capacity is enforced lazily on the next Insert.
func (s *LRUShard) AdjustCapacity(delta int64) {
	s.mu.Lock()
	s.capacity += delta
	s.mu.Unlock()
}

// hitMissEvict returns cumulative counters for telemetry sampling. Safe to
// call without the shard lock: the counters are independent atomics.
func (s *LRUShard) hitMissEvict() (hits, misses, evicts int64) {
	return s.hits.Load(), s.misses.Load(), s.evicts.Load()
}
