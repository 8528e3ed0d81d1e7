package reporting

import (
	"strings"
	"testing"
)

func TestPredefinedMeasures(t *testing.T) {
	if len(PredefinedMeasures) != 5 {
		t.Fatalf("expected 5 predefined measures, got %d", len(PredefinedMeasures))
	}

	expectedIDs := []string{
		"inventory-summary",
		"prescriptions-by-status",
		"expiring-medicines",
		"revenue-by-medicine",
		"reminders-due",
	}

	for i, expectedID := range expectedIDs {
		if PredefinedMeasures[i].ID != expectedID {
			t.Errorf("expected measure[%d].ID = %s, got %s", i, expectedID, PredefinedMeasures[i].ID)
		}
	}
}

func TestPredefinedMeasures_HaveSQL(t *testing.T) {
	for _, m := range PredefinedMeasures {
		if m.SQL == "" {
			t.Errorf("measure %s has empty SQL", m.ID)
		}
		if m.Name == "" {
			t.Errorf("measure %s has empty name", m.ID)
		}
		if m.Description == "" {
			t.Errorf("measure %s has empty description", m.ID)
		}
	}
}

func TestPredefinedMeasures_ReadOnlySQL(t *testing.T) {
	for _, m := range PredefinedMeasures {
		upper := strings.ToUpper(m.SQL)
		if !strings.HasPrefix(strings.TrimSpace(upper), "SELECT") {
			t.Errorf("measure %s SQL must be a SELECT, got %q", m.ID, m.SQL)
		}
		for _, verb := range []string{"INSERT ", "UPDATE ", "DELETE ", "DROP "} {
			if strings.Contains(upper, verb) {
				t.Errorf("measure %s SQL contains %s", m.ID, strings.TrimSpace(verb))
			}
		}
	}
}

func TestFindMeasure_Exists(t *testing.T) {
	m := FindMeasure("prescriptions-by-status")
	if m == nil {
		t.Fatal("expected to find prescriptions-by-status measure")
	}
	if m.Name != "Prescriptions by Status" {
		t.Errorf("expected 'Prescriptions by Status', got %s", m.Name)
	}
}

func TestFindMeasure_NotFound(t *testing.T) {
	if m := FindMeasure("nonexistent"); m != nil {
		t.Error("expected nil for nonexistent measure")
	}
}

func TestFindMeasure_AllPredefined(t *testing.T) {
	for _, def := range PredefinedMeasures {
		found := FindMeasure(def.ID)
		if found == nil {
			t.Errorf("expected to find measure %s", def.ID)
			continue
		}
		if found.ID != def.ID {
			t.Errorf("ID mismatch: expected %s, got %s", def.ID, found.ID)
		}
	}
}
