// Package kvcache provides an expiring string key-value store.
//
// It is used by the bucket index (feature/sheet) to persist its snapshot
// between runs with a bounded time-to-live. Two implementations exist:
//
//   - NewObjectCache: backed by object storage (core/storage). Each entry is
//     a JSON envelope {expires_at, data}; expiry is checked on read because
//     object stores do not expire keys natively.
//   - NewMemoryCache: in-process map, used in tests and one-shot CLI runs.
//
// Absent and expired keys are misses, not errors. A malformed stored
// envelope is an error so callers never deserialize a corrupt snapshot.
package kvcache
