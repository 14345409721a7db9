// Package iocache is for persisting selection history.
package iocache

import (
	"sync"

	"github.com/huangsam/ladder/internal/contract"
)

// StoreManagerImpl holds the process-wide history store.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetHistoryStore returns the HistoryStore, or nil when tracking is disabled.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
