package safety

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileStore persists the rule set as a JSON document on disk. Rule lookups
// never touch the file; callers load a snapshot once and evaluate against
// it. A missing file is seeded with the defaults, a corrupt one falls back
// to them, so the evaluation path can never fail on rule storage.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a store backed by the JSON document at path.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// EnsureSeeded writes the default rule set to the backing file if no file
// exists yet. It is idempotent; an existing file is left untouched. Racing
// seeders can at worst rewrite the same static content.
func (s *FileStore) EnsureSeeded() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat rule file %s: %w", s.path, err)
	}
	return s.Save(DefaultRuleSet())
}

// Load returns the rule set from disk, seeding the defaults first when the
// file is absent. A corrupt or unreadable file is logged and replaced by
// the in-memory defaults rather than surfaced as an error.
func (s *FileStore) Load() (*RuleSet, error) {
	if err := s.EnsureSeeded(); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("seeding rule file failed; using built-in defaults")
		return DefaultRuleSet(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("reading rule file failed; using built-in defaults")
		return DefaultRuleSet(), nil
	}

	rules := NewRuleSet()
	if err := json.Unmarshal(data, rules); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("rule file is corrupt; using built-in defaults")
		return DefaultRuleSet(), nil
	}
	normalize(rules)
	return rules, nil
}

// Save writes the rule set to the backing file, creating parent
// directories as needed.
func (s *FileStore) Save(rules *RuleSet) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create rule directory %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rule set: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write rule file %s: %w", s.path, err)
	}
	return nil
}

// normalize allocates any table a hand-edited file omitted, so point
// queries never hit a nil map.
func normalize(rules *RuleSet) {
	if rules.Interactions == nil {
		rules.Interactions = make(map[string]map[string]InteractionRule)
	}
	if rules.Contraindications == nil {
		rules.Contraindications = make(map[string][]string)
	}
	if rules.AgeWarnings == nil {
		rules.AgeWarnings = make(map[string]AgeRule)
	}
	if rules.AllergyWarnings == nil {
		rules.AllergyWarnings = make(map[string][]string)
	}
}
