package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestService(t *testing.T) (*Service, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "medicine_rules.json"), zerolog.Nop())
	return NewService(store), store
}

func TestService_CheckUsesSeededDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	result := svc.Check([]string{"Warfarin", "Aspirin"}, Profile{})
	if result.IsSafe {
		t.Error("expected Warfarin + Aspirin to be flagged unsafe")
	}
	if result.HighRiskCount == 0 {
		t.Error("expected a high risk warning from default rules")
	}
}

func TestService_ReplaceRules(t *testing.T) {
	svc, store := newTestService(t)

	rules := NewRuleSet()
	rules.Interactions["DrugA"] = map[string]InteractionRule{
		"DrugB": {Severity: SeverityHigh, Description: "do not combine", Recommendation: "pick one"},
	}
	if err := svc.ReplaceRules(rules); err != nil {
		t.Fatalf("ReplaceRules: %v", err)
	}

	result := svc.Check([]string{"DrugA", "DrugB"}, Profile{})
	if result.IsSafe {
		t.Error("expected replacement rules to flag DrugA + DrugB")
	}

	// Defaults are gone after replacement.
	result = svc.Check([]string{"Warfarin", "Aspirin"}, Profile{})
	if !result.IsSafe {
		t.Error("expected default interaction to be replaced")
	}

	// Replacement is persisted, not just cached.
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := loaded.Interactions["DrugA"]["DrugB"]; !ok {
		t.Error("expected replaced rules on disk")
	}
}

func TestService_ReplaceRules_InvalidSeverity(t *testing.T) {
	svc, _ := newTestService(t)

	rules := NewRuleSet()
	rules.Interactions["DrugA"] = map[string]InteractionRule{
		"DrugB": {Severity: "critical", Description: "bad level"},
	}
	if err := svc.ReplaceRules(rules); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestService_ReplaceRules_Nil(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.ReplaceRules(nil); err == nil {
		t.Error("expected error for nil rule set")
	}
}

func TestService_ReplaceRules_AllocatesMissingTables(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.ReplaceRules(&RuleSet{}); err != nil {
		t.Fatalf("ReplaceRules: %v", err)
	}
	rules := svc.Rules()
	if rules.Interactions == nil || rules.Contraindications == nil ||
		rules.AgeWarnings == nil || rules.AllergyWarnings == nil {
		t.Error("expected all rule tables allocated")
	}
}

func TestService_ReloadPicksUpFileEdits(t *testing.T) {
	svc, store := newTestService(t)

	// Populate the cache and the file.
	svc.Rules()
	if err := store.EnsureSeeded(); err != nil {
		t.Fatalf("EnsureSeeded: %v", err)
	}

	// Out-of-band edit: wipe the rules on disk.
	if err := os.WriteFile(store.Path(), []byte(`{"interactions":{},"contraindications":{},"age_warnings":{},"allergy_warnings":{}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Cache still holds the defaults until Reload.
	if svc.Check([]string{"Warfarin", "Aspirin"}, Profile{}).IsSafe {
		t.Error("expected cached rules before reload")
	}

	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !svc.Check([]string{"Warfarin", "Aspirin"}, Profile{}).IsSafe {
		t.Error("expected empty rules after reload")
	}
}

func TestService_RulesLazyLoad(t *testing.T) {
	svc, _ := newTestService(t)

	rules := svc.Rules()
	if rules == nil {
		t.Fatal("expected rules")
	}
	if len(rules.Interactions) == 0 {
		t.Error("expected seeded default interactions")
	}
}
