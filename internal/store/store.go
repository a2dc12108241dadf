// store/store.go
package store

import (
	"context"
	"errors"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("record not found")

// ShipmentStore defines the storage operations the commit path and the
// receipts screens need. Implemented by PostgresStore for production and
// MemoryStore for tests/local dev.
type ShipmentStore interface {
	// CreateShipment inserts a new shipment row and returns it with the
	// database-assigned ID filled in.
	CreateShipment(ctx context.Context, shipment models.Shipment) (models.Shipment, error)

	// CreateShipmentEvent appends one audit row for a shipment.
	// The shipment row must already exist, the event references its ID.
	CreateShipmentEvent(ctx context.Context, event models.ShipmentEvent) error

	// GetShipment fetches one shipment by ID.
	GetShipment(ctx context.Context, id string) (models.Shipment, error)

	// GetShipments lists a sender's shipments, optionally filtered by
	// status, newest first, with limit/offset pagination.
	GetShipments(ctx context.Context, senderUserID string, status models.ShipmentStatus, limit, offset int32) ([]models.Shipment, error)

	// UpdateShipmentStatus moves a shipment through its lifecycle.
	UpdateShipmentStatus(ctx context.Context, id string, status models.ShipmentStatus) error
}

// AgentStore is the read side for handover agents.
type AgentStore interface {
	// GetAgents returns agent rows matching the filter. Region matches
	// exactly, CityTown as a case-insensitive substring.
	GetAgents(ctx context.Context, filter models.AgentFilter) ([]models.AgentRecord, error)
}

// PreferenceStore persists per-user settings edited on the profile
// screens (currently just the favorite pickup agent).
type PreferenceStore interface {
	GetUserPreferences(ctx context.Context, userID string) (models.UserPreferences, error)
	UpsertUserPreferences(ctx context.Context, prefs models.UserPreferences) error
}
