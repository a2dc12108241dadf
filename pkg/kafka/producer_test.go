package kafka

import (
	"context"
	"encoding/json"
	"testing"

	skafka "github.com/segmentio/kafka-go"
)

// fakeWriter records messages instead of talking to a broker.
type fakeWriter struct {
	msgs []skafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	fw := &fakeWriter{}
	p := NewProducerWithWriter(fw)

	err := p.Publish(context.Background(), "shipment-1", map[string]string{"event": "shipment.created"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(fw.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fw.msgs))
	}
	if string(fw.msgs[0].Key) != "shipment-1" {
		t.Errorf("unexpected key %q", fw.msgs[0].Key)
	}

	var payload map[string]string
	if err := json.Unmarshal(fw.msgs[0].Value, &payload); err != nil {
		t.Fatalf("message value is not JSON: %v", err)
	}
	if payload["event"] != "shipment.created" {
		t.Errorf("unexpected payload %v", payload)
	}
}
