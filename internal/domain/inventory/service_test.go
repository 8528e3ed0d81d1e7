package inventory

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// ── Mock Repository ──

type mockMedicineRepo struct {
	data map[uuid.UUID]*Medicine
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{data: make(map[uuid.UUID]*Medicine)}
}

func (m *mockMedicineRepo) Create(_ context.Context, med *Medicine) error {
	med.ID = uuid.New()
	m.data[med.ID] = med
	return nil
}
func (m *mockMedicineRepo) GetByID(_ context.Context, id uuid.UUID) (*Medicine, error) {
	if med, ok := m.data[id]; ok {
		return med, nil
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockMedicineRepo) GetByName(_ context.Context, name string) (*Medicine, error) {
	for _, med := range m.data {
		if med.Name == name {
			return med, nil
		}
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockMedicineRepo) Update(_ context.Context, med *Medicine) error {
	if _, ok := m.data[med.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.data[med.ID] = med
	return nil
}
func (m *mockMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.data, id)
	return nil
}
func (m *mockMedicineRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Medicine, int, error) {
	var out []*Medicine
	for _, med := range m.data {
		if filter.Query != "" && !strings.Contains(strings.ToLower(med.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, med)
	}
	return out, len(out), nil
}
func (m *mockMedicineRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) (*Medicine, error) {
	med, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("insufficient stock or medicine not found")
	}
	if med.StockQuantity+delta < 0 {
		return nil, fmt.Errorf("insufficient stock or medicine not found")
	}
	med.StockQuantity += delta
	return med, nil
}
func (m *mockMedicineRepo) ListLowStock(_ context.Context) ([]*Medicine, error) {
	var out []*Medicine
	for _, med := range m.data {
		if med.IsLowStock() {
			out = append(out, med)
		}
	}
	return out, nil
}
func (m *mockMedicineRepo) ListExpiring(_ context.Context, days int) ([]*Medicine, error) {
	var out []*Medicine
	for _, med := range m.data {
		if med.ExpiresWithin(days) {
			out = append(out, med)
		}
	}
	return out, nil
}

// ── Tests ──

func TestCreateMedicine_RequiresName(t *testing.T) {
	svc := NewService(newMockMedicineRepo())

	err := svc.CreateMedicine(context.Background(), &Medicine{UnitPrice: 5})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestCreateMedicine_RejectsNegativePrice(t *testing.T) {
	svc := NewService(newMockMedicineRepo())

	err := svc.CreateMedicine(context.Background(), &Medicine{Name: "Amoxicillin", UnitPrice: -1})
	if err == nil {
		t.Fatal("expected error for negative unit price")
	}
}

func TestCreateMedicine_AssignsID(t *testing.T) {
	svc := NewService(newMockMedicineRepo())

	m := &Medicine{Name: "Amoxicillin", UnitPrice: 12.50, StockQuantity: 100, ReorderLevel: 20}
	if err := svc.CreateMedicine(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestAdjustStock_Decrements(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	m := &Medicine{Name: "Ibuprofen", UnitPrice: 3, StockQuantity: 10}
	svc.CreateMedicine(context.Background(), m)

	got, err := svc.AdjustStock(context.Background(), m.ID, -4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StockQuantity != 6 {
		t.Errorf("expected stock 6, got %d", got.StockQuantity)
	}
}

func TestAdjustStock_RejectsBelowZero(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	m := &Medicine{Name: "Ibuprofen", UnitPrice: 3, StockQuantity: 2}
	svc.CreateMedicine(context.Background(), m)

	if _, err := svc.AdjustStock(context.Background(), m.ID, -5); err == nil {
		t.Fatal("expected error when adjustment would go below zero")
	}
}

func TestAdjustStock_ZeroDeltaIsRead(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	m := &Medicine{Name: "Aspirin", UnitPrice: 2, StockQuantity: 7}
	svc.CreateMedicine(context.Background(), m)

	got, err := svc.AdjustStock(context.Background(), m.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StockQuantity != 7 {
		t.Errorf("expected stock unchanged at 7, got %d", got.StockQuantity)
	}
}

func TestListLowStock(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	svc.CreateMedicine(context.Background(), &Medicine{Name: "Low", UnitPrice: 1, StockQuantity: 5, ReorderLevel: 10})
	svc.CreateMedicine(context.Background(), &Medicine{Name: "Fine", UnitPrice: 1, StockQuantity: 50, ReorderLevel: 10})

	items, err := svc.ListLowStock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Low" {
		t.Errorf("expected only the low-stock medicine, got %v", items)
	}
}

func TestListExpiring_DefaultsTo30Days(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	soon := time.Now().AddDate(0, 0, 7)
	later := time.Now().AddDate(1, 0, 0)
	svc.CreateMedicine(context.Background(), &Medicine{Name: "Soon", UnitPrice: 1, ExpiryDate: &soon})
	svc.CreateMedicine(context.Background(), &Medicine{Name: "Later", UnitPrice: 1, ExpiryDate: &later})
	svc.CreateMedicine(context.Background(), &Medicine{Name: "Never", UnitPrice: 1})

	items, err := svc.ListExpiring(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Soon" {
		t.Errorf("expected only the soon-expiring medicine, got %v", items)
	}
}

func TestLookupBarcode_ByID(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	m := &Medicine{Name: "Warfarin", UnitPrice: 9}
	svc.CreateMedicine(context.Background(), m)

	got, err := svc.LookupBarcode(context.Background(), m.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Warfarin" {
		t.Errorf("expected Warfarin, got %s", got.Name)
	}
}

func TestLookupBarcode_FallsBackToName(t *testing.T) {
	repo := newMockMedicineRepo()
	svc := NewService(repo)

	svc.CreateMedicine(context.Background(), &Medicine{Name: "Warfarin", UnitPrice: 9})

	got, err := svc.LookupBarcode(context.Background(), "Warfarin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Warfarin" {
		t.Errorf("expected Warfarin, got %s", got.Name)
	}
}

func TestLookupBarcode_EmptyCode(t *testing.T) {
	svc := NewService(newMockMedicineRepo())

	if _, err := svc.LookupBarcode(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty code")
	}
}
