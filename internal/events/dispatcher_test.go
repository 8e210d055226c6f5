package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher(nil)

	var got []string
	d.Subscribe(EventStockAdjusted, func(ctx context.Context, event Event) error {
		got = append(got, event.ProductID)
		return nil
	})
	d.Subscribe(EventProductCreated, func(ctx context.Context, event Event) error {
		t.Fatalf("handler for another event type invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventStockAdjusted, ProductID: "p1"})
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 1 || got[0] != "p1" {
		t.Fatalf("expected one delivery for p1, got %v", got)
	}
}

func TestDispatcher_HandlerErrorLoggedAndDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	second := false
	d.Subscribe(EventOrderPlaced, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventOrderPlaced, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventOrderPlaced, ID: "evt-1"}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !second {
		t.Fatalf("expected second handler to run despite first handler error")
	}

	entries := logs.FilterMessage("event handler failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one failure log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != string(EventOrderPlaced) {
		t.Fatalf("expected event_type %q in log, got %v", EventOrderPlaced, fields["event_type"])
	}
	if fields["event_id"] != "evt-1" {
		t.Fatalf("expected event_id evt-1 in log, got %v", fields["event_id"])
	}
}
