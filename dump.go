package chash

import (
	"fmt"
	"io"
)

// Pair is a key-value pair as stored in a slot.
type Pair[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Slot is a snapshot of one bucket.
type Slot[K comparable, V any] struct {
	Index   int          `json:"index"`
	Entries []Pair[K, V] `json:"entries"`
}

// Stats describes the shape of a table at one point in time.
type Stats struct {
	Size         int     `json:"size"`
	Capacity     int     `json:"capacity"`
	LoadFactor   float64 `json:"load_factor"`
	Resizes      int     `json:"resizes"`
	LongestChain int     `json:"longest_chain"`
	EmptyBuckets int     `json:"empty_buckets"`
}

// Dump returns every slot with a copy of its chain, in slot order.
func (t *Table[K, V]) Dump() []Slot[K, V] {
	slots := make([]Slot[K, V], len(t.buckets))
	for i, bucket := range t.buckets {
		entries := make([]Pair[K, V], len(bucket))
		for j, e := range bucket {
			entries[j] = Pair[K, V]{Key: e.key, Value: e.value}
		}
		slots[i] = Slot[K, V]{Index: i, Entries: entries}
	}
	return slots
}

// DebugPrint writes one line per slot in the form "i: -> (k, v) -> (k, v)".
func (t *Table[K, V]) DebugPrint(w io.Writer) error {
	for i, bucket := range t.buckets {
		if _, err := fmt.Fprintf(w, "%d:", i); err != nil {
			return err
		}
		for _, e := range bucket {
			if _, err := fmt.Fprintf(w, " -> (%v, %v)", e.key, e.value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// Range calls fn for each entry in slot order, then chain order, until fn
// returns false. fn must not modify the table.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the table's size and chain distribution.
func (t *Table[K, V]) Stats() Stats {
	st := Stats{
		Size:       t.count,
		Capacity:   len(t.buckets),
		LoadFactor: t.LoadFactor(),
		Resizes:    t.resizes,
	}
	for _, bucket := range t.buckets {
		if len(bucket) == 0 {
			st.EmptyBuckets++
		}
		if len(bucket) > st.LongestChain {
			st.LongestChain = len(bucket)
		}
	}
	return st
}
