package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"devflow/config"
	"devflow/internal/adapter/cache"
	"devflow/internal/domain"
	devErrors "devflow/internal/errors"
	"devflow/internal/port"
)

// Session orchestrates analysis and suggestion requests against a
// pluggable provider. It caps the number of in-flight provider calls,
// tracks the currently active file, and keeps the latest metrics
// snapshot for display.
//
// Each state container has its own lock, and no lock is ever held
// across a provider call, so a slow network analysis never blocks
// status or config reads. The concurrency bound is fixed when the
// session is created; UpdateConfig swaps thresholds and flags but does
// not resize the in-flight semaphore.
type Session struct {
	provider port.Provider
	fetch    port.ContentFetcher
	sem      *semaphore.Weighted

	cache *cache.ResultCache // may be nil
	store port.ResultStore   // may be nil

	cfgMu sync.RWMutex
	cfg   config.AnalysisConfig

	stateMu    sync.RWMutex
	activeFile string

	metricsMu sync.RWMutex
	metrics   *domain.MetricsSnapshot
}

// NewSession creates an orchestrator. fetch may be nil if SuggestionsAt
// is never used; resultCache and store may be nil to disable caching
// layers independently.
func NewSession(provider port.Provider, fetch port.ContentFetcher, cfg config.AnalysisConfig, resultCache *cache.ResultCache, store port.ResultStore) (*Session, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider must not be nil")
	}
	if cfg.MaxConcurrentAnalyses < 1 {
		return nil, fmt.Errorf("max_concurrent_analyses must be positive, got %d", cfg.MaxConcurrentAnalyses)
	}

	return &Session{
		provider: provider,
		fetch:    fetch,
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrentAnalyses)),
		cache:    resultCache,
		store:    store,
		cfg:      cfg,
	}, nil
}

// Analyze runs one analysis request. On success it records the file as
// active, refreshes the metrics snapshot, and returns the timestamped
// result. On failure nothing is mutated. Concurrent calls on different
// files race on the active-file slot; the last call to complete wins.
func (s *Session) Analyze(ctx context.Context, actx domain.AnalysisContext) (domain.AnalysisResult, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return domain.AnalysisResult{}, &devErrors.SlotAcquisitionError{Underlying: err}
	}
	defer s.sem.Release(1)

	result, err := s.resolveResult(ctx, actx.Content)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	s.stateMu.Lock()
	s.activeFile = actx.FilePath
	s.stateMu.Unlock()

	s.metricsMu.Lock()
	s.metrics = &domain.MetricsSnapshot{
		Complexity: result.Complexity,
		Quality:    result.QualityScore,
	}
	s.metricsMu.Unlock()

	logrus.Debugf("Analyzed %s: quality=%.2f complexity=%.2f findings=%d",
		actx.FilePath, result.QualityScore, result.Complexity, len(result.Security))

	return result, nil
}

// SuggestionsAt produces range-anchored suggestions around the cursor
// position for the currently active file. It fails with ErrNoActiveFile
// when no analysis has succeeded yet, and never mutates session state.
func (s *Session) SuggestionsAt(ctx context.Context, pos domain.Position) ([]domain.Suggestion, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &devErrors.SlotAcquisitionError{Underlying: err}
	}
	defer s.sem.Release(1)

	s.stateMu.RLock()
	activeFile := s.activeFile
	s.stateMu.RUnlock()

	if activeFile == "" {
		return nil, devErrors.ErrNoActiveFile
	}
	if s.fetch == nil {
		return nil, fmt.Errorf("no content fetcher configured")
	}

	content, err := s.fetch(activeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", activeFile, err)
	}

	result, err := s.resolveResult(ctx, content)
	if err != nil {
		return nil, err
	}

	cfg := s.Config()
	suggestions := MapSuggestions(result, pos)
	return filterSuggestions(suggestions, cfg), nil
}

// SuggestFixes asks the provider for remediations, under the same
// concurrency bound as analyses.
func (s *Session) SuggestFixes(ctx context.Context, findings []domain.SecurityFinding) ([]string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &devErrors.SlotAcquisitionError{Underlying: err}
	}
	defer s.sem.Release(1)

	fixes, err := s.provider.SuggestFixes(ctx, findings)
	if err != nil {
		return nil, devErrors.NewProviderError(s.provider.Name(), "suggest_fixes", err)
	}
	return fixes, nil
}

// HandleTextChange is the real-time hook for editor integrations. It
// re-analyzes the active file's new content, or does nothing when
// real-time analysis is disabled or no file is active.
func (s *Session) HandleTextChange(ctx context.Context, content string) error {
	if !s.Config().EnableRealTime {
		return nil
	}

	s.stateMu.RLock()
	activeFile := s.activeFile
	s.stateMu.RUnlock()
	if activeFile == "" {
		return nil
	}

	_, err := s.Analyze(ctx, domain.AnalysisContext{FilePath: activeFile, Content: content})
	return err
}

// StatusSummary renders the latest metrics snapshot. It never fails;
// before the first successful analysis it reports that nothing is
// available.
func (s *Session) StatusSummary() string {
	s.metricsMu.RLock()
	defer s.metricsMu.RUnlock()

	if s.metrics == nil {
		return "no analysis available"
	}
	return fmt.Sprintf("Complexity: %.2f | Quality: %.2f", s.metrics.Complexity, s.metrics.Quality)
}

// Metrics returns the latest snapshot, if any.
func (s *Session) Metrics() (domain.MetricsSnapshot, bool) {
	s.metricsMu.RLock()
	defer s.metricsMu.RUnlock()

	if s.metrics == nil {
		return domain.MetricsSnapshot{}, false
	}
	return *s.metrics, true
}

// ActiveFile returns the currently active file, if any.
func (s *Session) ActiveFile() (string, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.activeFile, s.activeFile != ""
}

// Config returns a copy of the current configuration.
func (s *Session) Config() config.AnalysisConfig {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig replaces the configuration as a whole. The concurrency
// bound of in-flight calls is unaffected.
func (s *Session) UpdateConfig(cfg config.AnalysisConfig) error {
	if cfg.MaxConcurrentAnalyses < 1 {
		return fmt.Errorf("max_concurrent_analyses must be positive, got %d", cfg.MaxConcurrentAnalyses)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1], got %g", cfg.ConfidenceThreshold)
	}

	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
	return nil
}

// resolveResult returns an analysis result for the content, consulting
// the in-memory cache and the persistent store before calling the
// provider. The caller must already hold a concurrency slot.
func (s *Session) resolveResult(ctx context.Context, content string) (domain.AnalysisResult, error) {
	caching := s.Config().CacheResults
	key := cache.Key(content)

	if caching && s.cache != nil {
		if result, hit := s.cache.Get(key); hit {
			logrus.Debugf("Result cache hit for %s", key)
			return result, nil
		}
	}
	if caching && s.store != nil {
		result, found, err := s.store.GetResult(key)
		if err != nil {
			logrus.Warnf("Result store read failed: %v", err)
		} else if found {
			if s.cache != nil {
				s.cache.Put(key, result)
			}
			return result, nil
		}
	}

	result, err := s.provider.Analyze(ctx, content)
	if err != nil {
		return domain.AnalysisResult{}, devErrors.NewProviderError(s.provider.Name(), "analyze", err)
	}

	if caching {
		if s.cache != nil {
			s.cache.Put(key, result)
		}
		if s.store != nil {
			if err := s.store.PutResult(key, result); err != nil {
				logrus.Warnf("Result store write failed: %v", err)
			}
		}
	}

	return result, nil
}

// filterSuggestions applies the confidence threshold and the enabled
// category set from the configuration.
func filterSuggestions(suggestions []domain.Suggestion, cfg config.AnalysisConfig) []domain.Suggestion {
	enabled := make(map[domain.Category]bool, len(cfg.AnalysisTypes))
	for _, t := range cfg.AnalysisTypes {
		enabled[domain.Category(t)] = true
	}

	filtered := make([]domain.Suggestion, 0, len(suggestions))
	for _, sg := range suggestions {
		if sg.Confidence < cfg.ConfidenceThreshold {
			continue
		}
		if len(enabled) > 0 && !enabled[sg.Category] {
			continue
		}
		filtered = append(filtered, sg)
	}
	return filtered
}
