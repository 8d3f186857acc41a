package chash

import (
	"log"
	"time"
)

// Observer is notified after every completed resize.
type Observer interface {
	Resized(oldCapacity, newCapacity, size int, took time.Duration)
}

// Config holds the tunables of a Table. Zero values select the defaults.
type Config[K comparable] struct {
	// Capacity is the initial number of buckets.
	Capacity int
	// MaxLoadFactor is the load factor at which the table grows; it must be
	// in (0, 1].
	MaxLoadFactor float64
	// GrowthFactor multiplies the capacity on each resize; it must be at least 2.
	GrowthFactor int
	// MaxCapacity is the largest bucket array the table will allocate.
	MaxCapacity int
	// Hash maps keys to bucket addresses. Defaults to XXHash.
	Hash Hasher[K]
	// Logger receives resize progress lines. nil disables logging.
	Logger *log.Logger
	// Observer, if set, is told about every resize.
	Observer Observer
}

// withDefaults replaces missing or out-of-range settings. Invalid input is
// corrected rather than rejected.
func (c Config[K]) withDefaults() Config[K] {
	if c.Capacity < 1 {
		c.Capacity = DefaultCapacity
	}
	if c.MaxLoadFactor <= 0 || c.MaxLoadFactor > 1 {
		c.MaxLoadFactor = MaxLoadFactor
	}
	if c.GrowthFactor < 2 {
		c.GrowthFactor = GrowthFactor
	}
	if c.MaxCapacity < 1 {
		c.MaxCapacity = DefaultMaxCapacity
	}
	if c.MaxCapacity < c.Capacity {
		c.MaxCapacity = c.Capacity
	}
	if c.Hash == nil {
		c.Hash = XXHash[K]
	}
	return c
}
