package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/ISABROTHER/DELIVERYAPP/internal/activities"
	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
)

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func pendingShipment() models.Shipment {
	return models.Shipment{
		SenderUserID:   "user-1",
		SenderName:     "Ama Owusu",
		SenderPhone:    "+233244000000",
		RecipientName:  "Kwame Boateng",
		RecipientPhone: "+233551234567",
		Parcel:         models.ParcelDetails{Size: models.SizeSmall, WeightRange: "1-5kg"},
		Method:         models.HandoverDropoff,
		AgentID:        "agent-1",
		Security:       models.Security{ShipmentCode: "SHP123456", SenderPin: "654321", TrackingID: "TRKABCDEF0123"},
		BasePrice:      3000,
		TotalPrice:     3000,
		Status:         models.StatusPaidAwaitingHandover,
	}
}

func TestCreateShipmentWorkflow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	mem := store.NewMemoryStore()
	pub := &recordingPublisher{}
	acts := &activities.ShipmentActivities{Store: mem, Producer: pub}

	env.RegisterWorkflow(CreateShipmentWorkflow)
	env.RegisterActivity(acts.ACTIVITY_SaveShipment)
	env.RegisterActivity(acts.ACTIVITY_RecordCreationEvent)
	env.RegisterActivity(acts.ACTIVITY_PublishCreatedEvent)

	env.ExecuteWorkflow(CreateShipmentWorkflow, pendingShipment())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var stored models.Shipment
	require.NoError(t, env.GetWorkflowResult(&stored))
	require.NotEmpty(t, stored.ID, "save step must return the assigned id")

	// the event row references the stored id, written after the row
	events := mem.EventsFor(stored.ID)
	require.Len(t, events, 1)
	require.Equal(t, models.EventCreated, events[0].Type)

	// and exactly one kafka publish, keyed by the shipment id
	require.Equal(t, []string{stored.ID}, pub.keys)
}

func TestCreateShipmentWorkflow_RejectsMissingAgent(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	mem := store.NewMemoryStore()
	acts := &activities.ShipmentActivities{Store: mem}

	env.RegisterWorkflow(CreateShipmentWorkflow)
	env.RegisterActivity(acts.ACTIVITY_SaveShipment)
	env.RegisterActivity(acts.ACTIVITY_RecordCreationEvent)
	env.RegisterActivity(acts.ACTIVITY_PublishCreatedEvent)

	bad := pendingShipment()
	bad.AgentID = ""
	env.ExecuteWorkflow(CreateShipmentWorkflow, bad)

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 0, mem.ShipmentCount(), "a rejected save must write nothing")
}
