package core

type (
	// Subscription is a scoped acquisition on a ChangeBus. Close always
	// releases the slot and is safe to call more than once.
	Subscription interface {
		// C delivers a payload-free signal each time the shared store
		// changed. Signals are at-least-once and unordered; bursts may
		// coalesce. The channel is closed when the subscription is released.
		C() <-chan struct{}
		Close()
	}

	// ChangeBus broadcasts a payload-free "store changed, reload" signal to
	// every active subscriber, including ones in other execution contexts.
	// It holds no history and replays nothing to late subscribers.
	ChangeBus interface {
		Subscribe() Subscription
		Publish()
	}
)
