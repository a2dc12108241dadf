package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ISABROTHER/DELIVERYAPP/internal/agents"
	"github.com/ISABROTHER/DELIVERYAPP/internal/auth"
	"github.com/ISABROTHER/DELIVERYAPP/internal/commit"
	"github.com/ISABROTHER/DELIVERYAPP/internal/config"
	"github.com/ISABROTHER/DELIVERYAPP/internal/handler/rest"
	"github.com/ISABROTHER/DELIVERYAPP/internal/notify"
	"github.com/ISABROTHER/DELIVERYAPP/internal/payment"
	"github.com/ISABROTHER/DELIVERYAPP/internal/prefs"
	"github.com/ISABROTHER/DELIVERYAPP/internal/store"
	pkgkafka "github.com/ISABROTHER/DELIVERYAPP/pkg/kafka"
	pkgrabbit "github.com/ISABROTHER/DELIVERYAPP/pkg/rabbitmq"
)

// main wires the send-parcel API: postgres for storage, kafka for
// shipment events, rabbitmq for notification jobs, gin for the HTTP
// surface the mobile app talks to.
func main() {
	// .env is a local convenience, missing file is fine
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
	cfg := config.LoadConfig()

	pgStore, err := store.NewPostgresStore(cfg.GetDBURL())
	if err != nil {
		log.Fatalf("failed to create store: %v", err)
	}
	defer pgStore.Close()

	var producer pkgkafka.Publisher
	if cfg.KAFKA_BROKER != "" && cfg.KAFKA_TOPIC != "" {
		kp := pkgkafka.NewProducer(cfg.KAFKA_BROKER, cfg.KAFKA_TOPIC)
		defer kp.Close()
		producer = kp
		log.Println("connected to kafka")
	} else {
		log.Println("warning: kafka config missing, shipment events disabled")
	}

	var notifier *notify.Notifier
	if cfg.RABBITMQ_HOST != "" {
		rabbit, err := pkgrabbit.NewClient(cfg.GetRabbitMQURL())
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbit.Close()
		if err := rabbit.CreateQueue(notify.SMSQueue); err != nil {
			log.Fatalf("failed to create sms queue: %v", err)
		}
		notifier = notify.NewNotifier(rabbit)
		log.Println("connected to rabbitmq")
	} else {
		log.Println("warning: rabbitmq config missing, sms jobs disabled")
	}

	if cfg.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	authSvc := auth.NewService(
		auth.NewPostgresUserStore(pgStore.DB()),
		auth.NewArgon2Hasher(nil),
		auth.NewJWTSigner(cfg.JWT_SECRET, time.Hour),
	)

	// Card payments go through stripe when a key is configured; without
	// one, charges settle out of band (mobile money at the counter).
	var gateway payment.Gateway = payment.NoopGateway{}
	if cfg.STRIPE_API_KEY != "" {
		gateway = payment.NewStripeGateway(cfg.STRIPE_API_KEY)
		log.Println("connected to stripe")
	} else {
		log.Println("warning: stripe key missing, charges settle out of band")
	}

	lookup := agents.NewLookup(pgStore)
	committer := commit.NewCommitter(pgStore, gateway, producer, notifier)
	prefSvc := prefs.NewService(pgStore)

	engine := gin.Default()
	handler := rest.NewHandler(authSvc, lookup, committer, pgStore, prefSvc)
	handler.Register(engine)

	srv := &http.Server{Addr: cfg.HTTP_ADDR, Handler: engine}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("send service listening on %s", cfg.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		// In-flight commits get a grace period, the write side effect is
		// irreversible so we never force-cancel it.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("send service stopped: %v", err)
	}
}
