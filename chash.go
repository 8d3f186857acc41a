package chash

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"
)

const (
	// DefaultCapacity is used when a table is created with a capacity below 1.
	DefaultCapacity = 10
	// MaxLoadFactor is the count/capacity ratio at which a table grows.
	MaxLoadFactor = 0.7
	// GrowthFactor is the multiplier applied to the capacity on each resize.
	GrowthFactor = 2
	// DefaultMaxCapacity bounds the bucket array unless Config.MaxCapacity says otherwise.
	DefaultMaxCapacity = 1 << 30
)

// ErrCapacityExceeded is returned by Put when the table would have to grow
// beyond its maximum capacity.
var ErrCapacityExceeded = errors.New("capacity exceeded")

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is a hash table using separate chaining. Each slot of the bucket
// array holds the entries whose key hashes to that slot, in insertion order.
//
// A Table is not safe for concurrent use; callers sharing one must guard it
// with their own lock.
type Table[K comparable, V any] struct {
	buckets [][]entry[K, V]
	count   int

	hash          Hasher[K]
	maxLoadFactor float64
	growthFactor  int
	maxCapacity   int
	logger        *log.Logger
	observer      Observer

	resizes int
}

// New creates a table with the given number of buckets. A capacity below 1
// is replaced by DefaultCapacity.
func New[K comparable, V any](capacity int) *Table[K, V] {
	return NewWithConfig[K, V](Config[K]{Capacity: capacity})
}

// NewWithConfig creates a table from cfg. Missing or invalid settings fall
// back to their defaults; it never fails.
func NewWithConfig[K comparable, V any](cfg Config[K]) *Table[K, V] {
	cfg = cfg.withDefaults()
	return &Table[K, V]{
		buckets:       make([][]entry[K, V], cfg.Capacity),
		hash:          cfg.Hash,
		maxLoadFactor: cfg.MaxLoadFactor,
		growthFactor:  cfg.GrowthFactor,
		maxCapacity:   cfg.MaxCapacity,
		logger:        cfg.Logger,
		observer:      cfg.Observer,
	}
}

// slot maps a key to its bucket index under the given capacity.
func (t *Table[K, V]) slot(key K, capacity int) int {
	return int(t.hash(key) % uint64(capacity))
}

// lookup returns the position of key within bucket, or -1.
func lookup[K comparable, V any](bucket []entry[K, V], key K) int {
	for i := range bucket {
		if bucket[i].key == key {
			return i
		}
	}
	return -1
}

// Put adds or updates a key-value pair in the table. Adding a new key may
// grow the table; if that growth is impossible the insertion is undone and
// the table is left as it was before the call.
func (t *Table[K, V]) Put(key K, value V) error {
	idx := t.slot(key, len(t.buckets))
	bucket := t.buckets[idx]

	if i := lookup(bucket, key); i >= 0 {
		bucket[i].value = value
		return nil
	}

	t.buckets[idx] = append(bucket, entry[K, V]{key: key, value: value})
	t.count++

	if t.LoadFactor() < t.maxLoadFactor {
		return nil
	}

	t.logf("Resize triggered at load factor %.2f (%d/%d slots used)",
		t.LoadFactor(), t.count, len(t.buckets))
	if err := t.grow(); err != nil {
		last := len(t.buckets[idx]) - 1
		t.buckets[idx][last] = entry[K, V]{}
		t.buckets[idx] = t.buckets[idx][:last]
		t.count--
		return fmt.Errorf("resize failed: %w", err)
	}
	return nil
}

// Get retrieves a copy of the value stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	bucket := t.buckets[t.slot(key, len(t.buckets))]
	if i := lookup(bucket, key); i >= 0 {
		return bucket[i].value, true
	}
	var zero V
	return zero, false
}

// Remove deletes key from the table and reports whether it was present.
// The capacity is never reduced.
func (t *Table[K, V]) Remove(key K) bool {
	idx := t.slot(key, len(t.buckets))
	bucket := t.buckets[idx]
	i := lookup(bucket, key)
	if i < 0 {
		return false
	}

	last := len(bucket) - 1
	copy(bucket[i:], bucket[i+1:])
	bucket[last] = entry[K, V]{}
	t.buckets[idx] = bucket[:last]
	t.count--
	return true
}

// Size returns the number of keys stored.
func (t *Table[K, V]) Size() int {
	return t.count
}

// Capacity returns the length of the bucket array.
func (t *Table[K, V]) Capacity() int {
	return len(t.buckets)
}

// LoadFactor returns Size divided by Capacity.
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.buckets))
}

// grow multiplies the capacity by the growth factor as many times as it takes
// to bring the load factor back under the limit, then rehashes once. Nothing
// is changed if any step would pass the maximum capacity.
func (t *Table[K, V]) grow() error {
	oldCap := len(t.buckets)
	newCap := oldCap
	for float64(t.count)/float64(newCap) >= t.maxLoadFactor {
		if newCap > math.MaxInt/t.growthFactor || newCap*t.growthFactor > t.maxCapacity {
			return fmt.Errorf("cannot grow %d buckets by %dx (max %d): %w",
				newCap, t.growthFactor, t.maxCapacity, ErrCapacityExceeded)
		}
		newCap *= t.growthFactor
	}
	t.resize(newCap)
	return nil
}

// resize moves every entry into a fresh bucket array of newCap slots. The
// table's own state is replaced only once all entries have been placed.
func (t *Table[K, V]) resize(newCap int) {
	start := time.Now()
	oldCap := len(t.buckets)

	buckets := make([][]entry[K, V], newCap)
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			idx := t.slot(e.key, newCap)
			buckets[idx] = append(buckets[idx], e)
		}
	}

	t.buckets = buckets
	t.resizes++

	t.logf("Resize complete: slots %d -> %d, used=%d", oldCap, newCap, t.count)
	if t.observer != nil {
		t.observer.Resized(oldCap, newCap, t.count, time.Since(start))
	}
}

func (t *Table[K, V]) logf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}
