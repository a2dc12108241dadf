package activities

import (
	"context"
	"fmt"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
	pkgkafka "github.com/ISABROTHER/DELIVERYAPP/pkg/kafka"
)

// ShipmentActivities are the worker-side implementations of the create
// shipment workflow steps. Dependencies come in as interfaces so tests
// run against the memory store and a fake publisher.
type ShipmentActivities struct {
	Store    store.ShipmentStore
	Producer pkgkafka.Publisher
}

// ACTIVITY_SaveShipment persists the shipment row and returns it with
// the assigned id.
func (a *ShipmentActivities) ACTIVITY_SaveShipment(ctx context.Context, shipment models.Shipment) (models.Shipment, error) {
	if shipment.AgentID == "" {
		return models.Shipment{}, fmt.Errorf("shipment has no selected agent")
	}
	return a.Store.CreateShipment(ctx, shipment)
}

// ACTIVITY_RecordCreationEvent appends the initial audit row.
func (a *ShipmentActivities) ACTIVITY_RecordCreationEvent(ctx context.Context, shipment models.Shipment) error {
	return a.Store.CreateShipmentEvent(ctx, models.ShipmentEvent{
		ShipmentID:  shipment.ID,
		Type:        models.EventCreated,
		Description: fmt.Sprintf("Shipment %s created, %s handover", shipment.Security.ShipmentCode, shipment.Method),
		ActorType:   models.ActorSender,
	})
}

// ACTIVITY_PublishCreatedEvent writes shipment.created to kafka.
func (a *ShipmentActivities) ACTIVITY_PublishCreatedEvent(ctx context.Context, shipment models.Shipment) error {
	if a.Producer == nil {
		return nil
	}
	event := map[string]interface{}{
		"event":   "shipment.created",
		"payload": shipment,
	}
	return a.Producer.Publish(ctx, shipment.ID, event)
}
