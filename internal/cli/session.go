package cli

import (
	"fmt"
	"time"

	"devflow/config"
	"devflow/internal/adapter/cache"
	"devflow/internal/adapter/fs"
	"devflow/internal/adapter/provider"
	"devflow/internal/adapter/store"
	"devflow/internal/port"
	"devflow/internal/usecase"
)

// newSession wires a full orchestrator from the loaded configuration:
// provider selection, in-memory cache, and the persistent result store
// when cache_results is enabled. The returned cleanup closes the store.
func newSession(dir string) (*usecase.Session, func(), error) {
	p, err := provider.FromConfig(cfg.Provider)
	if err != nil {
		return nil, nil, err
	}

	var resultStore port.ResultStore
	cleanup := func() {}

	if cfg.Analysis.CacheResults {
		if err := config.EnsureDevflowDir(dir); err != nil {
			return nil, nil, fmt.Errorf("failed to create .devflow directory: %w", err)
		}
		bolt, err := store.NewBoltStore(config.ResultDBPath(dir))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open result store: %w", err)
		}
		resultStore = bolt
		cleanup = func() { bolt.Close() }
	}

	session, err := usecase.NewSession(
		p,
		fs.ReadFile,
		cfg.Analysis,
		cache.NewResultCache(256, 10*time.Minute),
		resultStore,
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return session, cleanup, nil
}
