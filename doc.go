/*
Package chash provides a generic in-memory hash table using separate chaining.

Table maps keys of any comparable type to values of any type. Keys that hash to
the same slot share a bucket, which is scanned linearly; the table grows when
its load factor reaches 0.7 so that chains stay short.

Basic usage:

	import "github.com/theflywheel/chash"

	// Create a table with 5 buckets
	ht := chash.New[string, int](5)

	// Insert data
	if err := ht.Put("dog", 34); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	v, ok := ht.Get("dog")
	if ok {
		fmt.Println("Value:", v)
	}

	// Delete data
	ht.Remove("dog")

Features:

  - Generic keys and values; keys are compared with ==
  - Separate chaining for collision resolution
  - Automatic resizing to twice the capacity when the load factor reaches 0.7
  - Pluggable hash function, xxHash64 by default, FNV-1a available
  - Invalid initial capacities fall back to a default of 10 buckets
  - Diagnostic dumps, stats and a Prometheus collector (package promstats)

Implementation Details:

The table is a slice of buckets, and each bucket is a slice of key/value
entries in insertion order. A key lives in the bucket at hash(key) mod
capacity. Updating a key rewrites its value in place; removing a key deletes
its entry and never shrinks the table.

A resize allocates a new bucket array, rehashes every entry into it and only
then swaps it in. If the new capacity would exceed the configured maximum, the
Put that triggered the resize is rolled back and returns an error wrapping
ErrCapacityExceeded.

The hash functions are deterministic and unseeded, so tables are not resistant
to adversarial key sets.

A Table is not safe for concurrent use. Guard it with a sync.Mutex or
sync.RWMutex when it is shared between goroutines.
*/
package chash
