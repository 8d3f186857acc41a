package chash

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to an unsigned integer. It must be deterministic, and
// equal keys must hash equally.
type Hasher[K comparable] func(key K) uint64

// XXHash hashes the value representation of key with xxHash64. It is the
// default Hasher.
func XXHash[K comparable](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		return xxhash.Sum64(binary.LittleEndian.AppendUint64(nil, uint64(k)))
	case uint64:
		return xxhash.Sum64(binary.LittleEndian.AppendUint64(nil, k))
	}
	var buf [64]byte
	return xxhash.Sum64(AppendKey(buf[:0], key))
}

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// FNV1a hashes the value representation of key with 64-bit FNV-1a.
func FNV1a[K comparable](key K) uint64 {
	hash := uint64(offset64)
	for _, b := range AppendKey(nil, key) {
		hash ^= uint64(b)
		hash *= prime64
	}
	return hash
}

// AppendKey appends a canonical byte encoding of key to b. Keys that compare
// equal with == always produce the same encoding.
func AppendKey[K comparable](b []byte, key K) []byte {
	return appendValue(b, reflect.ValueOf(any(key)))
}

func appendValue(b []byte, v reflect.Value) []byte {
	if !v.IsValid() {
		return append(b, 0)
	}
	switch v.Kind() {
	case reflect.String:
		s := v.String()
		b = binary.LittleEndian.AppendUint64(b, uint64(len(s)))
		return append(b, s...)
	case reflect.Bool:
		if v.Bool() {
			return append(b, 1)
		}
		return append(b, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(b, v.Uint())
	case reflect.Float32, reflect.Float64:
		return appendFloat(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return appendFloat(appendFloat(b, real(c)), imag(c))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		// identity, not contents
		return binary.LittleEndian.AppendUint64(b, uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			return append(b, 0)
		}
		elem := v.Elem()
		b = append(b, elem.Type().String()...)
		return appendValue(b, elem)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			b = appendValue(b, v.Index(i))
		}
		return b
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			b = appendValue(b, v.Field(i))
		}
		return b
	}
	// Non-comparable kinds never reach here through a comparable K.
	return append(b, v.Type().String()...)
}

func appendFloat(b []byte, f float64) []byte {
	if f == 0 {
		f = 0 // fold -0 into +0
	}
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
}
