package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ISABROTHER/DELIVERYAPP/internal/activities"
	"github.com/ISABROTHER/DELIVERYAPP/internal/config"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
	wf "github.com/ISABROTHER/DELIVERYAPP/internal/workflow"
	pkgkafka "github.com/ISABROTHER/DELIVERYAPP/pkg/kafka"
)

// The worker hosts the durable create-shipment pipeline. It shares the
// store and producer implementations with the API binary, Temporal just
// drives the retries.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
	cfg := config.LoadConfig()

	pgStore, err := store.NewPostgresStore(cfg.GetDBURL())
	if err != nil {
		log.Fatalf("worker failed to connect to db: %v", err)
	}
	defer pgStore.Close()

	var producer pkgkafka.Publisher
	if cfg.KAFKA_BROKER != "" && cfg.KAFKA_TOPIC != "" {
		kp := pkgkafka.NewProducer(cfg.KAFKA_BROKER, cfg.KAFKA_TOPIC)
		defer kp.Close()
		producer = kp
		log.Println("worker connected to kafka")
	} else {
		log.Println("warning: kafka config missing, worker will not publish events")
	}

	c, err := client.Dial(client.Options{HostPort: cfg.TEMPORAL_HOST_PORT})
	if err != nil {
		log.Fatalf("failed to create temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TEMPORAL_TASKQUEUE, worker.Options{})
	w.RegisterWorkflow(wf.CreateShipmentWorkflow)

	shipmentActivities := &activities.ShipmentActivities{
		Store:    pgStore,
		Producer: producer,
	}
	w.RegisterActivity(shipmentActivities.ACTIVITY_SaveShipment)
	w.RegisterActivity(shipmentActivities.ACTIVITY_RecordCreationEvent)
	w.RegisterActivity(shipmentActivities.ACTIVITY_PublishCreatedEvent)

	log.Println("worker starting on task queue:", cfg.TEMPORAL_TASKQUEUE)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("unable to start worker: %v", err)
	}
}
