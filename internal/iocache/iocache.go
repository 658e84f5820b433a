// Package iocache persists scoring runs so they can be inspected and exported later.
package iocache

import (
	"sync"

	"github.com/huangsam/solarsite/internal/contract"
)

// StoreManager owns the analysis store used by the current process.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	analysis     contract.AnalysisStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetAnalysisStore returns the analysis store, or nil when tracking is off.
func (mgr *StoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
