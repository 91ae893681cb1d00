package lrucache

// Cache is the public, polymorphic cache contract. ShardedLRU is the only
// implementation in this package; AdaptiveCache (package adaptive) composes
// two of them rather than implementing Cache itself, since it declares no
// single-argument Lookup, Erase or Prune.
type Cache interface {
	Insert(key Key, value any, charge int64, deleter Deleter) Handle
	Lookup(key Key) (Handle, bool)
	Release(h Handle)
	Value(h Handle) any
	Erase(key Key)
	NewId() uint64
	Prune()
	TotalCharge() int64
	AdjustCapacity(delta int64)
	GetCapacity() int64
}

var _ Cache = (*ShardedLRU)(nil)
