package membus

import "testing"

func TestPublishReachesEverySubscriber(t *testing.T) {
	bus := New()
	a := bus.Subscribe()
	b := bus.Subscribe()
	defer a.Close()
	defer b.Close()

	bus.Publish()
	for name, sub := range map[string]interface{ C() <-chan struct{} }{"a": a, "b": b} {
		select {
		case <-sub.C():
		default:
			t.Errorf("subscriber %s missed the signal", name)
		}
	}
}

func TestSignalsCoalesce(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	defer sub.Close()

	bus.Publish()
	bus.Publish()
	bus.Publish()

	<-sub.C()
	select {
	case <-sub.C():
		// one pending signal for the burst is fine
		select {
		case <-sub.C():
			t.Error("burst of publishes queued more than the coalesced signal")
		default:
		}
	default:
	}
}

func TestCloseReleases(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	sub.Close()
	sub.Close() // idempotent

	if _, ok := <-sub.C(); ok {
		t.Error("channel still open after Close")
	}

	// closed subscriptions never see later publishes
	bus.Publish()
}
