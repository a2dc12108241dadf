package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/pricing"
)

// Queue names consumed by the communications worker.
const (
	SMSQueue   = "sms_jobs"
	EmailQueue = "email_jobs"
)

// JobQueue is the slice of the rabbitmq client the notifier needs.
type JobQueue interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// SMSJob is the payload the communications worker picks up.
type SMSJob struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Notifier enqueues user-facing notifications. Delivery is best-effort:
// a failed enqueue is logged but never fails the calling operation, the
// shipment itself is already durable at that point.
type Notifier struct {
	queue JobQueue
}

func NewNotifier(queue JobQueue) *Notifier {
	return &Notifier{queue: queue}
}

// ShipmentCreated tells both parties about the new shipment. The sender
// gets the tracking id, the recipient gets a heads-up with the code to
// expect at delivery.
func (n *Notifier) ShipmentCreated(ctx context.Context, sh models.Shipment) {
	if n == nil || n.queue == nil {
		return
	}
	n.enqueueSMS(ctx, SMSJob{
		Phone: sh.SenderPhone,
		Message: fmt.Sprintf("Your shipment %s is paid. Track it with %s. Total: %s.",
			sh.Security.ShipmentCode, sh.Security.TrackingID, pricing.FormatPrice(sh.TotalPrice)),
	})
	n.enqueueSMS(ctx, SMSJob{
		Phone: sh.RecipientPhone,
		Message: fmt.Sprintf("%s is sending you a parcel. Tracking id: %s.",
			sh.SenderName, sh.Security.TrackingID),
	})
}

func (n *Notifier) enqueueSMS(ctx context.Context, job SMSJob) {
	body, err := json.Marshal(job)
	if err != nil {
		log.Printf("failed to marshal sms job: %v", err)
		return
	}
	if err := n.queue.Publish(ctx, SMSQueue, body); err != nil {
		log.Printf("failed to enqueue sms job: %v", err)
	}
}
