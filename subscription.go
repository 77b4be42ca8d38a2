package dux

// Subscriber is notified with the new state after every settled dispatch.
//
// Subscribers run after the state has already been replaced, so they cannot
// affect the action or state of the dispatch that triggered them. They are
// called once per settled dispatch, in registration order; a vetoed dispatch
// notifies nobody.
type Subscriber[S any] interface {
	Notify(state S)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc[S any] func(state S)

// Notify calls f.
func (f SubscriberFunc[S]) Notify(state S) {
	f(state)
}
