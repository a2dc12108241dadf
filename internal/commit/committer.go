package commit

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/notify"
	"github.com/ISABROTHER/DELIVERYAPP/internal/payment"
	"github.com/ISABROTHER/DELIVERYAPP/internal/sendflow"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
	pkgkafka "github.com/ISABROTHER/DELIVERYAPP/pkg/kafka"
)

// Sentinel errors the summary step maps to inline messages.
var (
	ErrNoAgentSelected   = errors.New("an agent must be selected before paying")
	ErrIncompleteWizard  = errors.New("missing required shipment details")
	ErrMissingPickupInfo = errors.New("pickup details are required for agent pickup")
	ErrInvalidHandover   = errors.New("handover method and pickup details are inconsistent")
)

// Committer finalizes a wizard session into a durable shipment record
// plus its initial audit event, and produces the codes for the physical
// handover protocol.
//
// This is the only component in the flow with an irreversible side
// effect, so its failure contract matters: on any store error the
// wizard is left fully intact and the caller can retry without the
// user re-entering anything.
type Committer struct {
	store    store.ShipmentStore
	gateway  payment.Gateway    // optional, nil skips the charge
	producer pkgkafka.Publisher // optional, nil disables events
	notifier *notify.Notifier   // optional, nil disables SMS jobs
}

func NewCommitter(shipmentStore store.ShipmentStore, gateway payment.Gateway, producer pkgkafka.Publisher, notifier *notify.Notifier) *Committer {
	return &Committer{store: shipmentStore, gateway: gateway, producer: producer, notifier: notifier}
}

// Commit charges the payment and writes the shipment plus its creation
// event. Ordering matters: the charge runs first (its idempotency key
// is the session's tracking id, so a retry never double-charges), and
// the shipment row must exist (and have an id) before the event row
// referencing it is attempted. The two writes are not transactional, a
// crash between them leaves a shipment with no audit trail, which
// operations tooling reconciles later.
//
// The wizard keeps all its data on success: the secure handover screen
// still needs the codes. The step controller resets at Complete/Close.
func (c *Committer) Commit(ctx context.Context, w *sendflow.Wizard, senderUserID string) (models.Shipment, error) {
	parcel := w.Parcel()
	route := w.Route()
	handover := w.Handover()
	sender := w.Sender()
	recipient := w.Recipient()

	if parcel == nil || route == nil || handover == nil || sender == nil || recipient == nil {
		return models.Shipment{}, ErrIncompleteWizard
	}
	// Hard precondition, not a soft gate: no agent, no commit.
	if handover.SelectedAgent == nil {
		return models.Shipment{}, ErrNoAgentSelected
	}
	// Pickup details exist if and only if the method is PICKUP. The
	// client gates this too, but this is the last stop before a row
	// exists, so the invariant is enforced here in both directions.
	if handover.Method != models.HandoverDropoff && handover.Method != models.HandoverPickup {
		return models.Shipment{}, ErrInvalidHandover
	}
	if !handover.Valid() {
		if handover.Method == models.HandoverPickup {
			return models.Shipment{}, ErrMissingPickupInfo
		}
		return models.Shipment{}, ErrInvalidHandover
	}

	// Generate the security artifacts exactly once per wizard session.
	// They go into the wizard immediately so a re-render (or a retry
	// after a failed write) sees the same codes, never fresh ones.
	sec := w.Security()
	if sec == nil {
		generated, err := GenerateSecurity()
		if err != nil {
			return models.Shipment{}, fmt.Errorf("failed to generate security codes: %w", err)
		}
		w.UpdateSecurity(generated)
		sec = &generated
	}

	// Charge before anything is written. A decline must leave zero
	// rows; a success followed by a store failure is safe to retry
	// because the idempotency key is stable for the whole session.
	if c.gateway != nil {
		req := payment.Request{
			ReferenceID: sec.TrackingID,
			AmountCents: w.TotalPrice(),
			Currency:    "GHS",
			Description: "Parcel " + sec.ShipmentCode,
			Metadata: map[string]string{
				"shipment_code": sec.ShipmentCode,
				"tracking_id":   sec.TrackingID,
			},
		}
		if pi := w.Payment(); pi != nil {
			req.CustomerID = pi.CustomerID
			req.PaymentMethodID = pi.PaymentMethodID
		}
		if _, err := c.gateway.ChargeAttempt(ctx, req); err != nil {
			if payment.IsRetryableError(err) {
				return models.Shipment{}, fmt.Errorf("payment attempt failed, retry: %w", err)
			}
			return models.Shipment{}, fmt.Errorf("payment declined: %w", err)
		}
	}

	shipment := models.Shipment{
		SenderUserID:    senderUserID,
		SenderName:      sender.Name,
		SenderPhone:     sendflow.NormalizePhoneNumber(sender.Phone),
		RecipientName:   recipient.Name,
		RecipientPhone:  sendflow.NormalizePhoneNumber(recipient.Phone),
		RecipientLandmk: recipient.Landmark,
		Parcel:          *parcel,
		Route:           *route,
		Method:          handover.Method,
		PickupDetails:   handover.PickupDetails,
		AgentID:         handover.SelectedAgent.ID,
		Security:        *sec,
		BasePrice:       w.BasePrice(),
		PickupFee:       w.PickupFee(),
		TotalPrice:      w.TotalPrice(),
		Status:          models.StatusPaidAwaitingHandover,
	}

	created, err := c.store.CreateShipment(ctx, shipment)
	if err != nil {
		// Wizard untouched: the user retries without re-entering data.
		return models.Shipment{}, fmt.Errorf("failed to save shipment: %w", err)
	}

	event := models.ShipmentEvent{
		ShipmentID:  created.ID,
		Type:        models.EventCreated,
		Description: fmt.Sprintf("Shipment %s created, %s handover", created.Security.ShipmentCode, created.Method),
		ActorType:   models.ActorSender,
	}
	if err := c.store.CreateShipmentEvent(ctx, event); err != nil {
		return models.Shipment{}, fmt.Errorf("failed to record shipment event: %w", err)
	}

	// Fire-and-forget event publish, same as shipment updates elsewhere.
	// A broker hiccup must not fail a commit that is already durable.
	if c.producer != nil {
		payload := map[string]interface{}{
			"event":   "shipment.created",
			"payload": created,
		}
		go func() {
			if err := c.producer.Publish(context.Background(), created.ID, payload); err != nil {
				log.Printf("failed to publish shipment.created: %v", err)
			}
		}()
	}
	c.notifier.ShipmentCreated(ctx, created)
	return created, nil
}

// GenerateSecurity draws the three independent identifiers:
// a shipment code ("SHP" + 6 digits), a 6-digit sender PIN and a
// tracking id ("TRK" + 10 base36 chars).
func GenerateSecurity() (models.Security, error) {
	code, err := randomDigits(6)
	if err != nil {
		return models.Security{}, err
	}
	pin, err := randomDigits(6)
	if err != nil {
		return models.Security{}, err
	}
	tracking, err := randomBase36(10)
	if err != nil {
		return models.Security{}, err
	}
	return models.Security{
		ShipmentCode: "SHP" + code,
		SenderPin:    pin,
		TrackingID:   "TRK" + tracking,
	}, nil
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomDigits(n int) (string, error) {
	return randomFromAlphabet(base36Alphabet[:10], n)
}

func randomBase36(n int) (string, error) {
	return randomFromAlphabet(base36Alphabet, n)
}

func randomFromAlphabet(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
