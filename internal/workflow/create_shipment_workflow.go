package workflow

import (
	"time"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// Activity names registered by the worker. String-based so the caller
// doesn't need the activities package.
const (
	ActivitySaveShipment   = "ACTIVITY_SaveShipment"
	ActivityRecordCreation = "ACTIVITY_RecordCreationEvent"
	ActivityPublishCreated = "ACTIVITY_PublishCreatedEvent"
)

// CreateShipmentWorkflow is the durable version of the commit pipeline:
// save the shipment row, append the creation event, publish the kafka
// event. Temporal retries each step through database or broker outages,
// and the ordering guarantee (row before event) comes for free from the
// sequential activity calls.
func CreateShipmentWorkflow(ctx workflow.Context, shipment models.Shipment) (models.Shipment, error) {
	retrypolicy := &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    100,
	}
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy:         retrypolicy,
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	// Step 1: persist the shipment row, get the assigned id back.
	var stored models.Shipment
	if err := workflow.ExecuteActivity(ctx, ActivitySaveShipment, shipment).Get(ctx, &stored); err != nil {
		return models.Shipment{}, err
	}

	// Step 2: append the creation event referencing the new id.
	if err := workflow.ExecuteActivity(ctx, ActivityRecordCreation, stored).Get(ctx, nil); err != nil {
		return models.Shipment{}, err
	}

	// Step 3: publish shipment.created. Fire and forget from the app's
	// point of view, but Temporal makes sure it eventually fires.
	if err := workflow.ExecuteActivity(ctx, ActivityPublishCreated, stored).Get(ctx, nil); err != nil {
		return models.Shipment{}, err
	}

	return stored, nil
}
