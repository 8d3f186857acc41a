package chash_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/theflywheel/chash"
)

func identity(k int) uint64 { return uint64(k) }

func TestDebugPrint(t *testing.T) {
	ht := chash.NewWithConfig[int, string](chash.Config[int]{Capacity: 4, Hash: identity})
	ht.Put(1, "one")
	ht.Put(5, "five")

	var buf bytes.Buffer
	if err := ht.DebugPrint(&buf); err != nil {
		t.Fatalf("DebugPrint failed: %v", err)
	}

	want := "0:\n1: -> (1, one) -> (5, five)\n2:\n3:\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("DebugPrint output mismatch (-want +got):\n%s", diff)
	}
}

func TestDump(t *testing.T) {
	ht := chash.NewWithConfig[int, string](chash.Config[int]{Capacity: 3, Hash: identity})
	ht.Put(2, "two")
	ht.Put(5, "five")

	want := []chash.Slot[int, string]{
		{Index: 0, Entries: []chash.Pair[int, string]{}},
		{Index: 1, Entries: []chash.Pair[int, string]{}},
		{Index: 2, Entries: []chash.Pair[int, string]{{Key: 2, Value: "two"}, {Key: 5, Value: "five"}}},
	}
	dump := ht.Dump()
	if diff := cmp.Diff(want, dump); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}

	// the dump is a copy
	dump[2].Entries[0].Value = "changed"
	if v, _ := ht.Get(2); v != "two" {
		t.Errorf("Dump aliases table storage: got %q", v)
	}
}

func TestRange(t *testing.T) {
	ht := chash.NewWithConfig[int, int](chash.Config[int]{Capacity: 10, Hash: identity})
	for _, k := range []int{3, 13, 1, 2} {
		ht.Put(k, k*10)
	}

	var keys []int
	ht.Range(func(k, v int) bool {
		if v != k*10 {
			t.Errorf("Key %d: unexpected value %d", k, v)
		}
		keys = append(keys, k)
		return true
	})
	if diff := cmp.Diff([]int{1, 2, 3, 13}, keys); diff != "" {
		t.Errorf("Range order mismatch (-want +got):\n%s", diff)
	}

	n := 0
	ht.Range(func(int, int) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("Expected Range to stop after 2 calls, got %d", n)
	}
}
