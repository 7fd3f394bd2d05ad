package sheet

import (
	"context"
	"testing"
	"time"

	"sheet-sync/core/kvcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex() *BucketIndex {
	return NewBucketIndex(kvcache.NewMemoryCache(), "test", time.Hour)
}

func TestBucketIndex_Add(t *testing.T) {
	idx := newTestIndex()

	t.Run("RejectsBlankInput", func(t *testing.T) {
		assert.Error(t, idx.Add("", "A", 2))
		assert.Error(t, idx.Add("campaignName", "  ", 2))
		assert.Error(t, idx.Add("campaignName", "A", 0))
	})

	t.Run("GroupsByValue", func(t *testing.T) {
		require.NoError(t, idx.Add("campaignName", "A", 2))
		require.NoError(t, idx.Add("campaignName", "A", 3))
		require.NoError(t, idx.Add("campaignName", "B", 5))

		assert.Equal(t, []int{2, 3}, idx.Get("campaignName", "A"))
		assert.Equal(t, []int{5}, idx.Get("campaignName", "B"))
	})

	t.Run("NilForUnknownColumn", func(t *testing.T) {
		assert.Nil(t, idx.Get("adGroupName", "A"))
	})

	t.Run("NilForEmptyBucket", func(t *testing.T) {
		assert.Nil(t, idx.Get("campaignName", "C"))
	})
}

func TestBucketIndex_Transfer(t *testing.T) {
	t.Run("PreservesMembership", func(t *testing.T) {
		idx := newTestIndex()
		require.NoError(t, idx.Add("campaignName", "A", 2))
		require.NoError(t, idx.Add("campaignName", "A", 3))
		require.NoError(t, idx.Add("campaignName", "B", 5))

		idx.Transfer("campaignName", "A", "B")

		assert.ElementsMatch(t, []int{2, 3, 5}, idx.Get("campaignName", "B"))
		assert.Empty(t, idx.Get("campaignName", "A"))
	})

	t.Run("KeepsDuplicates", func(t *testing.T) {
		// A stale snapshot can leave the same row in both buckets; the
		// merge concatenates without deduplication.
		idx := newTestIndex()
		require.NoError(t, idx.Add("campaignName", "A", 2))
		require.NoError(t, idx.Add("campaignName", "B", 2))

		idx.Transfer("campaignName", "A", "B")
		assert.Equal(t, []int{2, 2}, idx.Get("campaignName", "B"))
	})

	t.Run("NoopForUnknownColumn", func(t *testing.T) {
		idx := newTestIndex()
		idx.Transfer("adGroupName", "A", "B")
		assert.Nil(t, idx.Get("adGroupName", "B"))
	})

	t.Run("NoopForSameValue", func(t *testing.T) {
		idx := newTestIndex()
		require.NoError(t, idx.Add("campaignName", "A", 2))
		idx.Transfer("campaignName", "A", "A")
		assert.Equal(t, []int{2}, idx.Get("campaignName", "A"))
	})
}

func TestBucketIndex_SaveLoad(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemoryCache()

	idx := NewBucketIndex(cache, "ads", time.Hour)
	require.NoError(t, idx.Add("campaignName", "A", 2))
	require.NoError(t, idx.Add("campaignName", "B", 5))
	require.NoError(t, idx.Save(ctx))

	restored := NewBucketIndex(cache, "ads", time.Hour)
	loaded, err := restored.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []int{2}, restored.Get("campaignName", "A"))
	assert.Equal(t, []int{5}, restored.Get("campaignName", "B"))
}

func TestBucketIndex_Load_Absent(t *testing.T) {
	idx := newTestIndex()
	loaded, err := idx.Load(context.Background())
	assert.NoError(t, err)
	assert.False(t, loaded)
}

func TestBucketIndex_Load_Malformed(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemoryCache()
	require.NoError(t, cache.Put(ctx, "ads", "{broken", time.Hour))

	idx := NewBucketIndex(cache, "ads", time.Hour)
	_, err := idx.Load(ctx)
	assert.Error(t, err)
}

func TestBucketIndex_Clear(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemoryCache()

	idx := NewBucketIndex(cache, "ads", time.Hour)
	require.NoError(t, idx.Add("campaignName", "A", 2))
	require.NoError(t, idx.Save(ctx))
	require.NoError(t, idx.Clear(ctx))

	assert.Nil(t, idx.Get("campaignName", "A"))
	_, ok, err := cache.Get(ctx, "ads")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBucketIndex_KeysScopedByStorageKey(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemoryCache()

	a := NewBucketIndex(cache, "run-a", time.Hour)
	require.NoError(t, a.Add("campaignName", "A", 2))
	require.NoError(t, a.Save(ctx))

	b := NewBucketIndex(cache, "run-b", time.Hour)
	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestHashValue_Stability(t *testing.T) {
	// Equal content must hash identically; the snapshot format depends
	// on the exact function.
	assert.Equal(t, hashValue("Campaign A"), hashValue("Campaign A"))
	assert.NotEqual(t, hashValue("Campaign A"), hashValue("Campaign B"))
	assert.Equal(t, int32(0), hashValue(""))
}
