package kvcache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"sheet-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	t.Run("MissOnAbsent", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "nope")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("PutGet", func(t *testing.T) {
		assert.NoError(t, c.Put(ctx, "k", "v", time.Minute))
		val, ok, err := c.Get(ctx, "k")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", val)
	})

	t.Run("MissOnExpired", func(t *testing.T) {
		assert.NoError(t, c.Put(ctx, "stale", "v", -time.Second))
		_, ok, err := c.Get(ctx, "stale")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, c.Put(ctx, "gone", "v", time.Minute))
		assert.NoError(t, c.Delete(ctx, "gone"))
		_, ok, _ := c.Get(ctx, "gone")
		assert.False(t, ok)
	})
}

func TestObjectCache_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("FreshEntry", func(t *testing.T) {
		env := envelope{ExpiresAt: time.Now().Add(time.Hour), Data: "payload"}
		raw, _ := json.Marshal(env)

		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "idx/key.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(raw)), nil)

		c := NewObjectCache(client, "bucket", "idx")
		val, ok, err := c.Get(ctx, "key")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "payload", val)
	})

	t.Run("ExpiredEntry", func(t *testing.T) {
		env := envelope{ExpiresAt: time.Now().Add(-time.Hour), Data: "payload"}
		raw, _ := json.Marshal(env)

		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "idx/key.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(raw)), nil)
		client.On("RemoveObject", mock.Anything, "bucket", "idx/key.json", mock.Anything).
			Return(nil)

		c := NewObjectCache(client, "bucket", "idx")
		_, ok, err := c.Get(ctx, "key")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MissWhenAbsenceSurfacesAtOpen", func(t *testing.T) {
		// Some S3-compatible backends report a missing key when the
		// object is opened rather than on the first read.
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "idx/key.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		c := NewObjectCache(client, "bucket", "idx")
		_, ok, err := c.Get(ctx, "key")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MalformedEntry", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "idx/key.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("{not json"))), nil)

		c := NewObjectCache(client, "bucket", "idx")
		_, _, err := c.Get(ctx, "key")
		assert.Error(t, err)
	})
}

func TestObjectCache_Put(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "idx/key.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	c := NewObjectCache(client, "bucket", "idx")
	err := c.Put(context.Background(), "key", "payload", time.Hour)
	assert.NoError(t, err)
	client.AssertExpectations(t)
}
