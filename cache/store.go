package cache

import (
	"encoding/json"
	"time"

	utilcache "github.com/umakantv/go-utils/cache"
)

// Store adapts the go-utils cache to byte payloads. All methods are safe to
// call on a nil *Store, which behaves as an empty cache.
type Store struct {
	backend utilcache.Cache
}

// Get returns the cached payload for key
func (s *Store) Get(key string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	cached, err := s.backend.Get(key)
	if err != nil || cached == nil {
		return nil, false
	}
	return asBytes(cached)
}

// Set stores value under key for ttl. The payload is handed over as a
// string: the redis backend JSON-encodes values and would turn a []byte
// into base64.
func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	if s == nil {
		return
	}
	s.backend.Set(key, string(value), ttl)
}

// Delete drops key from the cache
func (s *Store) Delete(key string) {
	if s == nil {
		return
	}
	s.backend.Delete(key)
}

// Close releases the backend connection
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.backend.Close()
}

// asBytes normalizes what the backend hands back: the memory backend returns
// the stored []byte, redis may return a string or a decoded JSON value.
func asBytes(v interface{}) ([]byte, bool) {
	switch val := v.(type) {
	case []byte:
		return val, true
	case string:
		return []byte(val), true
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return nil, false
		}
		return data, true
	}
}
