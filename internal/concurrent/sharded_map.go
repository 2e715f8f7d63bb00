// Package concurrent provides a lock-partitioned map used to accumulate
// per-document scores from many goroutines at once.
package concurrent

import (
	"cmp"
	"slices"
	"sync"
)

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type Number interface {
	Integer | ~float32 | ~float64
}

type bucket[K Integer, V Number] struct {
	mu   sync.Mutex
	data map[K]V
}

// ShardedMap partitions keys across a fixed number of independently locked
// buckets. Operations on keys in different buckets never contend.
type ShardedMap[K Integer, V Number] struct {
	buckets []bucket[K, V]
}

// NewShardedMap creates a map with n buckets. n below 1 is treated as 1.
func NewShardedMap[K Integer, V Number](n int) *ShardedMap[K, V] {
	if n < 1 {
		n = 1
	}
	m := &ShardedMap[K, V]{buckets: make([]bucket[K, V], n)}
	for i := range m.buckets {
		m.buckets[i].data = make(map[K]V)
	}
	return m
}

func (m *ShardedMap[K, V]) bucketFor(key K) *bucket[K, V] {
	n := uint64(len(m.buckets))
	k := int64(key)
	if k < 0 {
		k = -k
	}
	return &m.buckets[uint64(k)%n]
}

// Access is exclusive access to one slot. The owning bucket stays locked
// until Release.
type Access[K Integer, V Number] struct {
	Value *V
	b     *bucket[K, V]
	key   K
	val   V
}

// Release writes the value back and unlocks the bucket. It must be called
// exactly once.
func (a *Access[K, V]) Release() {
	a.b.data[a.key] = a.val
	a.b.mu.Unlock()
}

// Access locks the bucket owning key and returns its slot, creating a zero
// value if the key is absent.
func (m *ShardedMap[K, V]) Access(key K) *Access[K, V] {
	b := m.bucketFor(key)
	b.mu.Lock()
	a := &Access[K, V]{b: b, key: key, val: b.data[key]}
	a.Value = &a.val
	return a
}

// Update applies fn to the slot of key while holding its bucket lock.
func (m *ShardedMap[K, V]) Update(key K, fn func(v *V)) {
	a := m.Access(key)
	defer a.Release()
	fn(a.Value)
}

// Add adds delta to the value of key.
func (m *ShardedMap[K, V]) Add(key K, delta V) {
	b := m.bucketFor(key)
	b.mu.Lock()
	b.data[key] += delta
	b.mu.Unlock()
}

// Erase removes key. Only its bucket is locked.
func (m *ShardedMap[K, V]) Erase(key K) {
	b := m.bucketFor(key)
	b.mu.Lock()
	delete(b.data, key)
	b.mu.Unlock()
}

// Snapshot merges all buckets into one ordinary map, locking each bucket in
// turn. It is consistent only once writers have stopped.
func (m *ShardedMap[K, V]) Snapshot() map[K]V {
	out := make(map[K]V)
	for i := range m.buckets {
		b := &m.buckets[i]
		b.mu.Lock()
		for k, v := range b.data {
			out[k] = v
		}
		b.mu.Unlock()
	}
	return out
}

func (m *ShardedMap[K, V]) Len() int {
	n := 0
	for i := range m.buckets {
		b := &m.buckets[i]
		b.mu.Lock()
		n += len(b.data)
		b.mu.Unlock()
	}
	return n
}

// Keys returns the keys of a snapshot in ascending order.
func Keys[K cmp.Ordered, V any](snapshot map[K]V) []K {
	keys := make([]K, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
