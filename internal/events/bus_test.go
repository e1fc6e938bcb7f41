package events

import (
	"testing"

	"github.com/gogreen-admin/internal/constants"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	got := make([]uint, 0)
	bus.Subscribe(constants.EventContentListChanged, func(event ContentEvent) {
		got = append(got, event.ID)
	})
	bus.Subscribe(constants.EventContentListChanged, func(event ContentEvent) {
		got = append(got, event.ID+100)
	})

	bus.Publish(ContentEvent{
		Name: constants.EventContentListChanged,
		Kind: constants.ContentKindPromotion,
		ID:   7,
	})

	if len(got) != 2 {
		t.Fatalf("handler calls want 2 got %d", len(got))
	}
	if got[0] != 7 || got[1] != 107 {
		t.Fatalf("unexpected delivery order %v", got)
	}
}

func TestBusIgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe(constants.EventHomepageContentChanged, func(ContentEvent) {
		called = true
	})

	bus.Publish(ContentEvent{Name: constants.EventContentListChanged})

	if called {
		t.Fatalf("homepage subscriber should not see list events")
	}
}

func TestBusSurvivesPanickingSubscriber(t *testing.T) {
	bus := NewBus()
	reached := false
	bus.Subscribe(constants.EventContentListChanged, func(ContentEvent) {
		panic("boom")
	})
	bus.Subscribe(constants.EventContentListChanged, func(ContentEvent) {
		reached = true
	})

	bus.Publish(ContentEvent{Name: constants.EventContentListChanged})

	if !reached {
		t.Fatalf("second subscriber should run after panic in first")
	}
}

func TestBusStampsEventTime(t *testing.T) {
	bus := NewBus()
	var gotZero bool
	bus.Subscribe(constants.EventHomepageContentChanged, func(event ContentEvent) {
		gotZero = event.At.IsZero()
	})

	bus.Publish(ContentEvent{Name: constants.EventHomepageContentChanged})

	if gotZero {
		t.Fatalf("publish should stamp event time when unset")
	}
}
