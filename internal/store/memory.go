package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of the store interfaces.
// Used in tests and for local development without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	shipments map[string]models.Shipment
	events    map[string][]models.ShipmentEvent // keyed by shipment id
	agents    []models.AgentRecord
	prefs     map[string]models.UserPreferences
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shipments: make(map[string]models.Shipment),
		events:    make(map[string][]models.ShipmentEvent),
		prefs:     make(map[string]models.UserPreferences),
	}
}

// SeedAgents loads agent rows for tests and local dev.
func (s *MemoryStore) SeedAgents(agents []models.AgentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = append(s.agents, agents...)
}

func (s *MemoryStore) CreateShipment(ctx context.Context, sh models.Shipment) (models.Shipment, error) {
	select {
	case <-ctx.Done():
		return models.Shipment{}, ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}
	if sh.CreatedAt.IsZero() {
		sh.CreatedAt = time.Now().UTC()
	}
	s.shipments[sh.ID] = sh
	return sh, nil
}

func (s *MemoryStore) CreateShipmentEvent(ctx context.Context, ev models.ShipmentEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shipments[ev.ShipmentID]; !ok {
		return ErrNotFound
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	s.events[ev.ShipmentID] = append(s.events[ev.ShipmentID], ev)
	return nil
}

func (s *MemoryStore) GetShipment(ctx context.Context, id string) (models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shipments[id]
	if !ok {
		return models.Shipment{}, ErrNotFound
	}
	return sh, nil
}

func (s *MemoryStore) GetShipments(ctx context.Context, senderUserID string, status models.ShipmentStatus, limit, offset int32) ([]models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Shipment
	for _, sh := range s.shipments {
		if sh.SenderUserID != senderUserID {
			continue
		}
		if status != "" && sh.Status != status {
			continue
		}
		result = append(result, sh)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	start := int(offset)
	end := start + int(limit)
	if start > len(result) {
		return nil, nil
	}
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], nil
}

func (s *MemoryStore) UpdateShipmentStatus(ctx context.Context, id string, status models.ShipmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shipments[id]
	if !ok {
		return ErrNotFound
	}
	sh.Status = status
	s.shipments[id] = sh
	return nil
}

func (s *MemoryStore) GetAgents(ctx context.Context, f models.AgentFilter) ([]models.AgentRecord, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.AgentRecord
	for _, a := range s.agents {
		if a.IsActive != f.IsActive {
			continue
		}
		if f.CanPickup && !a.CanPickup {
			continue
		}
		if f.CanDropoff && !a.CanDropoff {
			continue
		}
		if f.Region != "" && a.Region != f.Region {
			continue
		}
		if f.CityTown != "" && !strings.Contains(strings.ToLower(a.CityTown), strings.ToLower(f.CityTown)) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// EventsFor returns the audit rows recorded for a shipment. Test helper.
func (s *MemoryStore) EventsFor(shipmentID string) []models.ShipmentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ShipmentEvent(nil), s.events[shipmentID]...)
}

// ShipmentCount reports how many shipment rows exist. Test helper.
func (s *MemoryStore) ShipmentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shipments)
}

func (s *MemoryStore) GetUserPreferences(ctx context.Context, userID string) (models.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prefs[userID]; ok {
		return p, nil
	}
	return models.UserPreferences{UserID: userID}, nil
}

func (s *MemoryStore) UpsertUserPreferences(ctx context.Context, prefs models.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[prefs.UserID] = prefs
	return nil
}
