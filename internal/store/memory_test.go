package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
)

func seedShipments(t *testing.T, s *MemoryStore, userID string, n int, status models.ShipmentStatus) []models.Shipment {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var out []models.Shipment
	for i := 0; i < n; i++ {
		created, err := s.CreateShipment(context.Background(), models.Shipment{
			SenderUserID: userID,
			Status:       status,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		out = append(out, created)
	}
	return out
}

func TestGetShipmentsFiltersAndPaginates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seedShipments(t, s, "user-1", 5, models.StatusPaidAwaitingHandover)
	seedShipments(t, s, "user-2", 3, models.StatusPaidAwaitingHandover)
	seedShipments(t, s, "user-1", 2, models.StatusDelivered)

	all, err := s.GetShipments(ctx, "user-1", "", 100, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 7 {
		t.Fatalf("user-1 owns 7 shipments, got %d", len(all))
	}
	// newest first
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatal("results are not sorted newest first")
		}
	}

	delivered, err := s.GetShipments(ctx, "user-1", models.StatusDelivered, 100, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(delivered) != 2 {
		t.Fatalf("expected 2 delivered, got %d", len(delivered))
	}

	page, err := s.GetShipments(ctx, "user-1", "", 3, 5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page past the end should be truncated, got %d", len(page))
	}
	if out, _ := s.GetShipments(ctx, "user-1", "", 3, 50); out != nil {
		t.Fatal("offset beyond the result set must return nothing")
	}
}

func TestCreateShipmentEventRequiresShipment(t *testing.T) {
	s := NewMemoryStore()
	err := s.CreateShipmentEvent(context.Background(), models.ShipmentEvent{ShipmentID: "nope"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateShipmentStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created := seedShipments(t, s, "user-1", 1, models.StatusPaidAwaitingHandover)[0]

	if err := s.UpdateShipmentStatus(ctx, created.ID, models.StatusInTransit); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := s.GetShipment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != models.StatusInTransit {
		t.Errorf("status = %s", got.Status)
	}

	if err := s.UpdateShipmentStatus(ctx, "missing", models.StatusInTransit); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v", err)
	}
}

func TestGetAgentsFilter(t *testing.T) {
	s := NewMemoryStore()
	s.SeedAgents([]models.AgentRecord{
		{ID: "a1", Region: "Greater Accra", CityTown: "Accra", CanPickup: true, CanDropoff: true, IsActive: true},
		{ID: "a2", Region: "Greater Accra", CityTown: "East Accra", CanDropoff: true, IsActive: true},
		{ID: "a3", Region: "Ashanti", CityTown: "Kumasi", CanPickup: true, IsActive: true},
		{ID: "a4", Region: "Greater Accra", CityTown: "Accra", CanPickup: true, IsActive: false},
	})
	ctx := context.Background()

	got, err := s.GetAgents(ctx, models.AgentFilter{IsActive: true, Region: "Greater Accra", CanPickup: true})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("expected only a1, got %+v", got)
	}

	// city filter matches substrings, case-insensitive
	got, err = s.GetAgents(ctx, models.AgentFilter{IsActive: true, CityTown: "accra"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected a1 and a2, got %+v", got)
	}
}

func TestCancelledContextRejected(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.CreateShipment(ctx, models.Shipment{}); err == nil {
		t.Fatal("cancelled context must not write")
	}
	if _, err := s.GetAgents(ctx, models.AgentFilter{}); err == nil {
		t.Fatal("cancelled context must not query")
	}
}

func TestUserPreferencesUpsert(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// unset prefs come back zero-valued, not as an error
	p, err := s.GetUserPreferences(ctx, "user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if p.FavoriteAgentID != "" {
		t.Fatalf("expected empty prefs, got %+v", p)
	}

	p.FavoriteAgentID = "agent-1"
	if err := s.UpsertUserPreferences(ctx, p); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	p2, _ := s.GetUserPreferences(ctx, "user-1")
	if p2.FavoriteAgentID != "agent-1" {
		t.Errorf("prefs not persisted: %+v", p2)
	}
}
