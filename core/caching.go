package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL bounds how old a cached geometry may be before it is recomputed
const cacheTTL = 7 * 24 * time.Hour

// cachedGeometry serves chart geometry from the geometry store, computing it on a miss.
func cachedGeometry(cfg *contract.Config, in ChartInput, mgr contract.CacheManager) (*schema.ChartGeometry, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetGeometryStore()
	}
	if store == nil {
		// Fallback to direct computation
		return computeGeometry(cfg, in)
	}

	key := generateCacheKey(cfg, in)

	// Check for cache hit
	if result := checkCacheHit(store, key); result != nil {
		return result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(cfg, in, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.ChartGeometry {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheTTL {
			var result schema.ChartGeometry
			if err := json.Unmarshal(data, &result); err == nil {
				result.CacheHit = true
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(cfg *contract.Config, in ChartInput, store contract.CacheStore, key string) (*schema.ChartGeometry, error) {
	result, err := computeGeometry(cfg, in)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache chart geometry", err)
		}
	}

	return result, nil
}

// generateCacheKey creates a unique key from the data and every setting that changes geometry
func generateCacheKey(cfg *contract.Config, in ChartInput) string {
	key := fmt.Sprintf("%s:%g:%g:%g,%g,%g,%g:%s:%t:%g:%d:%s:%g",
		dataIdentity(in),
		cfg.Dimensions.Width,
		cfg.Dimensions.Height,
		cfg.Dimensions.Margin.Top,
		cfg.Dimensions.Margin.Right,
		cfg.Dimensions.Margin.Bottom,
		cfg.Dimensions.Margin.Left,
		cfg.Curve,
		cfg.Nice,
		cfg.PaddingRatio,
		cfg.Ticks,
		cfg.XAxis,
		cfg.Reveal,
	)
	for _, st := range cfg.Stats {
		key += fmt.Sprintf(":%s=%g%s", st.Name, st.Value, st.Unit)
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// dataIdentity hashes the chart input so that any change to the data changes the key
func dataIdentity(in ChartInput) string {
	data, err := json.Marshal(in)
	if err != nil {
		// Non-finite values cannot be encoded as JSON
		data = fmt.Appendf(nil, "%v", in)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
