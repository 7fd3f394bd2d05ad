package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"sheet-sync/core/kvcache"
)

// BucketIndex groups row identifiers by the value they share in a linked
// column. Grouping by value keeps edit propagation O(rows-per-bucket) and
// survives row insertion and deletion, since membership is keyed by value
// rather than position.
//
// The index is persisted as a JSON snapshot keyed by column name, then by
// the decimal string of a 32-bit signed rolling hash of the value, each
// bucket an array of row identifiers.
type BucketIndex struct {
	cache      kvcache.Cache
	storageKey string
	ttl        time.Duration
	buckets    map[string]map[string][]int
}

// NewBucketIndex creates an empty index persisted under storageKey with
// the given snapshot time-to-live.
func NewBucketIndex(cache kvcache.Cache, storageKey string, ttl time.Duration) *BucketIndex {
	return &BucketIndex{
		cache:      cache,
		storageKey: storageKey,
		ttl:        ttl,
		buckets:    make(map[string]map[string][]int),
	}
}

// hashValue computes the 32-bit signed rolling hash of a value over its
// UTF-16 code units. Equal content always hashes identically; collisions
// across distinct values are possible but rare enough for bucket keys.
func hashValue(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return h
}

func bucketKey(value string) string {
	return strconv.FormatInt(int64(hashValue(value)), 10)
}

// Add appends rowID to the bucket for value under column, creating the
// column and bucket entries on first use. Blank column or value, or a
// non-positive rowID, is an error: silently dropping a membership would
// corrupt future propagation.
func (x *BucketIndex) Add(column, value string, rowID int) error {
	if strings.TrimSpace(column) == "" {
		return fmt.Errorf("bucket index: column must not be blank")
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("bucket index: value must not be blank")
	}
	if rowID <= 0 {
		return fmt.Errorf("bucket index: invalid row id %d", rowID)
	}

	col, ok := x.buckets[column]
	if !ok {
		col = make(map[string][]int)
		x.buckets[column] = col
	}
	key := bucketKey(value)
	col[key] = append(col[key], rowID)
	return nil
}

// Get returns the row identifiers sharing value in column. It returns nil
// when the column has never been populated or the bucket is empty.
func (x *BucketIndex) Get(column, value string) []int {
	col, ok := x.buckets[column]
	if !ok {
		return nil
	}
	return col[bucketKey(value)]
}

// Transfer merges the members of oldValue's bucket into newValue's bucket
// and removes the old bucket. It must be called whenever an edit changes
// a linked cell's value so lookups by the new value find all previously
// linked rows plus the edited one.
//
// Members are concatenated without deduplication: a row id present in
// both buckets (possible when a stale snapshot is reloaded) appears
// twice. Duplicates only cause the same cell write to repeat, and
// deduping would diverge from snapshots written by earlier runs.
func (x *BucketIndex) Transfer(column, oldValue, newValue string) {
	col, ok := x.buckets[column]
	if !ok {
		return
	}
	oldKey := bucketKey(oldValue)
	newKey := bucketKey(newValue)
	if oldKey == newKey {
		return
	}
	col[newKey] = append(col[newKey], col[oldKey]...)
	delete(col, oldKey)
}

// Columns returns the number of populated columns. Test helper.
func (x *BucketIndex) Columns() int {
	return len(x.buckets)
}

// Save serializes the index to the snapshot cache with its TTL.
func (x *BucketIndex) Save(ctx context.Context) error {
	raw, err := json.Marshal(x.buckets)
	if err != nil {
		return fmt.Errorf("failed to encode bucket index: %w", err)
	}
	if err := x.cache.Put(ctx, x.storageKey, string(raw), x.ttl); err != nil {
		return fmt.Errorf("failed to persist bucket index: %w", err)
	}
	return nil
}

// Load restores the index from the snapshot cache. An absent or expired
// snapshot leaves the index empty and reports loaded=false; a malformed
// snapshot is an error.
func (x *BucketIndex) Load(ctx context.Context) (loaded bool, err error) {
	raw, ok, err := x.cache.Get(ctx, x.storageKey)
	if err != nil {
		return false, err
	}
	if !ok {
		x.buckets = make(map[string]map[string][]int)
		return false, nil
	}
	var buckets map[string]map[string][]int
	if err := json.Unmarshal([]byte(raw), &buckets); err != nil {
		return false, fmt.Errorf("malformed bucket index snapshot: %w", err)
	}
	if buckets == nil {
		buckets = make(map[string]map[string][]int)
	}
	x.buckets = buckets
	return true, nil
}

// Clear resets the in-memory state and removes the persisted snapshot.
func (x *BucketIndex) Clear(ctx context.Context) error {
	x.buckets = make(map[string]map[string][]int)
	return x.cache.Delete(ctx, x.storageKey)
}
