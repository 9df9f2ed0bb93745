package eventbus

import (
	"testing"

	"github.com/solbatt/solbatt/core/events"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(events.ScheduleEvent{RunID: "r1"})
	v := <-ch
	ev, ok := v.(events.ScheduleEvent)
	if !ok || ev.RunID != "r1" {
		t.Fatalf("expected ScheduleEvent r1 got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < 20; i++ {
		bus.Publish(i)
	}
	// Buffer is 8; the rest were dropped without blocking Publish.
	if got := len(ch); got != 8 {
		t.Fatalf("expected 8 buffered events, got %d", got)
	}
	bus.Unsubscribe(ch)
}
