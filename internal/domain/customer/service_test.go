package customer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// ── Mock Repository ──

type mockCustomerRepo struct {
	data map[uuid.UUID]*Customer
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{data: make(map[uuid.UUID]*Customer)}
}

func (m *mockCustomerRepo) Create(_ context.Context, c *Customer) error {
	c.ID = uuid.New()
	m.data[c.ID] = c
	return nil
}
func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*Customer, error) {
	if c, ok := m.data[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockCustomerRepo) Update(_ context.Context, c *Customer) error {
	if _, ok := m.data[c.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.data[c.ID] = c
	return nil
}
func (m *mockCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.data, id)
	return nil
}
func (m *mockCustomerRepo) List(_ context.Context, query string, limit, offset int) ([]*Customer, int, error) {
	var out []*Customer
	for _, c := range m.data {
		out = append(out, c)
	}
	return out, len(out), nil
}

func strPtr(s string) *string { return &s }

// ── Tests ──

func TestCreateCustomer_RequiresName(t *testing.T) {
	svc := NewService(newMockCustomerRepo())

	if err := svc.CreateCustomer(context.Background(), &Customer{}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestCreateCustomer_RejectsFutureDOB(t *testing.T) {
	svc := NewService(newMockCustomerRepo())

	future := time.Now().AddDate(1, 0, 0)
	err := svc.CreateCustomer(context.Background(), &Customer{Name: "Jordan Reyes", DateOfBirth: &future})
	if err == nil {
		t.Fatal("expected error for future date of birth")
	}
}

func TestSafetyProfile_SplitsFields(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewService(repo)

	dob := time.Now().AddDate(-45, 0, -1)
	c := &Customer{
		Name:              "Jordan Reyes",
		DateOfBirth:       &dob,
		Allergies:         strPtr("Penicillin, Sulfa"),
		MedicalConditions: strPtr("Hypertension,  Active stomach ulcer "),
	}
	if err := svc.CreateCustomer(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := svc.SafetyProfile(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Age == nil || *p.Age != 45 {
		t.Errorf("expected age 45, got %v", p.Age)
	}
	if len(p.Allergies) != 2 || p.Allergies[0] != "Penicillin" || p.Allergies[1] != "Sulfa" {
		t.Errorf("unexpected allergies: %v", p.Allergies)
	}
	if len(p.Conditions) != 2 || p.Conditions[1] != "Active stomach ulcer" {
		t.Errorf("unexpected conditions: %v", p.Conditions)
	}
}

func TestSafetyProfile_NoDOBLeavesAgeUnknown(t *testing.T) {
	repo := newMockCustomerRepo()
	svc := NewService(repo)

	c := &Customer{Name: "Sam Okafor"}
	svc.CreateCustomer(context.Background(), c)

	p, err := svc.SafetyProfile(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Age != nil {
		t.Errorf("expected unknown age, got %d", *p.Age)
	}
	if len(p.Allergies) != 0 || len(p.Conditions) != 0 {
		t.Errorf("expected empty profile lists, got %v / %v", p.Allergies, p.Conditions)
	}
}

func TestSafetyProfile_UnknownCustomer(t *testing.T) {
	svc := NewService(newMockCustomerRepo())

	if _, err := svc.SafetyProfile(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown customer")
	}
}
