package kvcache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"sheet-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Cache is an expiring string key-value store.
// Get reports a miss (not an error) for absent or expired keys.
type Cache interface {
	// Get returns the value for key, or ok=false if absent or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put stores value under key with the given time-to-live.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// envelope wraps a cached value with its expiry, since object stores
// do not expire keys natively.
type envelope struct {
	ExpiresAt time.Time `json:"expires_at"`
	Data      string    `json:"data"`
}

// objectCache stores each entry as a JSON object in object storage.
type objectCache struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectCache creates a Cache backed by object storage.
// Entries are stored under prefix, one object per key.
func NewObjectCache(client storage.Client, bucket, prefix string) Cache {
	return &objectCache{client: client, bucket: bucket, prefix: prefix}
}

func (c *objectCache) objectName(key string) string {
	if c.prefix == "" {
		return key + ".json"
	}
	return c.prefix + "/" + key + ".json"
}

func (c *objectCache) Get(ctx context.Context, key string) (string, bool, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, c.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		// Some S3-compatible backends surface absence here instead of
		// on the first read.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cache object %s: %w", key, err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		// Minio surfaces "no such key" on read, not on open.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cache object %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", false, fmt.Errorf("malformed cache object %s: %w", key, err)
	}

	if time.Now().After(env.ExpiresAt) {
		// Best effort cleanup of the stale object
		_ = c.client.RemoveObject(ctx, c.bucket, c.objectName(key), minio.RemoveObjectOptions{})
		return "", false, nil
	}

	return env.Data, true, nil
}

func (c *objectCache) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	env := envelope{
		ExpiresAt: time.Now().Add(ttl),
		Data:      value,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode cache object %s: %w", key, err)
	}

	_, err = c.client.PutObject(ctx, c.bucket, c.objectName(key),
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put cache object %s: %w", key, err)
	}
	return nil
}

func (c *objectCache) Delete(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, c.objectName(key), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove cache object %s: %w", key, err)
	}
	return nil
}
