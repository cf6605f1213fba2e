// Package storage persists discovery results and light snapshots between
// command invocations.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scripts-richard/huectl/internal/bridge"
)

const (
	keyBridgeAddress = "bridge_address"
	keyLights        = "lights"
)

// Cache is a TTL'd key-value store backed by SQLite. Cache misses and read
// failures are soft: callers fall back to the network.
type Cache struct {
	db *sql.DB
}

// NewCache creates a cache on top of an open database.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) get(key string) (string, bool) {
	var value string
	var expiresAt int64

	err := c.db.QueryRow(`
		SELECT value, expires_at FROM cache WHERE key = ?
	`, key).Scan(&value, &expiresAt)

	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read cache")
		return "", false
	}

	if time.Now().UTC().Unix() > expiresAt {
		_, _ = c.db.Exec(`DELETE FROM cache WHERE key = ?`, key)
		return "", false
	}

	log.Debug().Str("key", key).Msg("Cache hit")
	return value, true
}

func (c *Cache) put(key, value string, ttl time.Duration) error {
	now := time.Now().UTC().Unix()
	_, err := c.db.Exec(`
		INSERT INTO cache (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, key, value, now+int64(ttl.Seconds()), now)

	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to write cache")
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// BridgeAddress returns the cached bridge address, if still valid.
func (c *Cache) BridgeAddress() (string, bool) {
	return c.get(keyBridgeAddress)
}

// PutBridgeAddress stores a discovered bridge address.
func (c *Cache) PutBridgeAddress(address string, ttl time.Duration) error {
	return c.put(keyBridgeAddress, address, ttl)
}

// Lights returns the cached light inventory, if still valid.
func (c *Cache) Lights() (map[string]bridge.Light, bool) {
	value, ok := c.get(keyLights)
	if !ok {
		return nil, false
	}

	var lights map[string]bridge.Light
	if err := json.Unmarshal([]byte(value), &lights); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable light snapshot")
		_, _ = c.db.Exec(`DELETE FROM cache WHERE key = ?`, keyLights)
		return nil, false
	}
	return lights, true
}

// PutLights stores a light inventory snapshot.
func (c *Cache) PutLights(lights map[string]bridge.Light, ttl time.Duration) error {
	data, err := json.Marshal(lights)
	if err != nil {
		return fmt.Errorf("failed to marshal lights: %w", err)
	}
	return c.put(keyLights, string(data), ttl)
}

// Invalidate drops the light snapshot. State writes call this so the next
// read reflects the change.
func (c *Cache) Invalidate() {
	_, _ = c.db.Exec(`DELETE FROM cache WHERE key = ?`, keyLights)
}
