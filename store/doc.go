// Package store caches encoded reports keyed by the SHA-256 digest of the
// source document.
//
// Two implementations are provided: MemoryStore for a single process and
// RedisStore, which keeps each entry under "<prefix>:report:<digest>" with a
// TTL and tracks known digests in the "<prefix>:reports" set.
package store
