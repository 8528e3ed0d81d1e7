package safety

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ProfileSource resolves a stored customer record into a safety Profile.
// The customer domain implements it; keeping it an interface here avoids a
// dependency from the core engine onto customer storage.
type ProfileSource interface {
	SafetyProfile(ctx context.Context, customerID uuid.UUID) (Profile, error)
}

// Service caches a rule snapshot from the FileStore and answers safety
// checks against it. The snapshot is loaded once and reused; rule edits go
// through ReplaceRules, which persists and swaps the cache.
type Service struct {
	store *FileStore

	mu    sync.RWMutex
	rules *RuleSet
}

// NewService creates a safety service over the given store. Rules are
// loaded lazily on first use.
func NewService(store *FileStore) *Service {
	return &Service{store: store}
}

func (s *Service) snapshot() *RuleSet {
	s.mu.RLock()
	rules := s.rules
	s.mu.RUnlock()
	if rules != nil {
		return rules
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rules == nil {
		loaded, _ := s.store.Load() // Load never fails; worst case it returns defaults
		s.rules = loaded
	}
	return s.rules
}

// Check evaluates a medicine list against a patient profile using the
// cached rule snapshot.
func (s *Service) Check(medicines []string, profile Profile) Result {
	return NewEvaluator(s.snapshot()).Evaluate(medicines, profile)
}

// Rules returns the current rule snapshot.
func (s *Service) Rules() *RuleSet {
	return s.snapshot()
}

// ReplaceRules validates, persists, and swaps in a new rule set.
func (s *Service) ReplaceRules(rules *RuleSet) error {
	if rules == nil {
		return fmt.Errorf("rule set is required")
	}
	for _, severityByMed := range rules.Interactions {
		for medB, rule := range severityByMed {
			switch rule.Severity {
			case SeverityHigh, SeverityMedium, SeverityLow:
			default:
				return fmt.Errorf("invalid severity %q for interaction with %s", rule.Severity, medB)
			}
		}
	}
	normalize(rules)
	if err := s.store.Save(rules); err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return nil
}

// Reload discards the cached snapshot and re-reads the backing file, for
// use after out-of-band edits to the rule document.
func (s *Service) Reload() error {
	loaded, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = loaded
	s.mu.Unlock()
	return nil
}
