// Package iocache persists computed chart geometry and render-run history.
package iocache

import (
	"sync"

	"github.com/huangsam/chartkit/internal/contract"
)

// CacheStoreManager manages the geometry cache and the run store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	geometry     contract.CacheStore
	runs         contract.RunStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetGeometryStore returns the geometry CacheStore.
func (mgr *CacheStoreManager) GetGeometryStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.geometry
}

// GetRunStore returns the render-run RunStore.
func (mgr *CacheStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
