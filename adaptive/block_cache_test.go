package adaptive

import (
	"testing"

	"github.com/guancheng-lai/leveldb-ACKey/lrucache"
)

func TestBlockCache_InsertLookupRelease(t *testing.T) {
	t.Parallel()

	bc := NewBlockCache(1 << 20)
	h := bc.Insert(lrucache.Key("block-1"), []byte("payload"), 1024, nil)
	bc.Release(h)

	got, ok := bc.LookupGhost(lrucache.Key("block-1"), nil)
	if !ok {
		t.Fatal("block-1 should be resident")
	}
	if v := bc.Value(got); string(v.([]byte)) != "payload" {
		t.Fatalf("Value() = %v, want payload", v)
	}
	bc.Release(got)
}

func TestBlockCache_TotalChargeDelegatesToAdaptiveCache(t *testing.T) {
	t.Parallel()

	bc := NewBlockCache(1 << 20)
	h := bc.Insert(lrucache.Key("k"), "v", 512, nil)
	bc.Release(h)

	if got := bc.TotalRealCharge(); got != 512 {
		t.Fatalf("TotalRealCharge() = %d, want 512", got)
	}
	if got := bc.TotalCharge(); got != bc.TotalRealCharge()+bc.TotalGhostCharge() {
		t.Fatalf("TotalCharge() = %d, want real+ghost", got)
	}
}

func TestBlockCache_NewIdMonotonic(t *testing.T) {
	t.Parallel()

	bc := NewBlockCache(1 << 20)
	a, b := bc.NewId(), bc.NewId()
	if b <= a {
		t.Fatalf("NewId() not increasing: %d then %d", a, b)
	}
}

func TestBlockCache_SingleArgLookupPanics(t *testing.T) {
	t.Parallel()

	bc := NewBlockCache(1 << 20)
	defer func() {
		if recover() == nil {
			t.Fatal("Lookup(key) should panic, matching the original's assert(false) contract")
		}
	}()
	bc.Lookup(lrucache.Key("block-1"))
}

func TestBlockCache_ErasePanics(t *testing.T) {
	t.Parallel()

	bc := NewBlockCache(1 << 20)
	defer func() {
		if recover() == nil {
			t.Fatal("Erase should panic, matching the original's assert(false) contract")
		}
	}()
	bc.Erase(lrucache.Key("block-1"))
}
