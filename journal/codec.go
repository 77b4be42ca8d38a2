package journal

import "encoding/json"

// Codec converts actions to and from journal payload bytes. Actions are
// opaque to the core, so the journal cannot serialize them itself; the
// caller supplies the encoding.
//
// Decode(Encode(a)) must reproduce an action the reducer treats identically
// to a, or replay will diverge from the original run.
type Codec[A any] interface {
	Encode(action A) ([]byte, error)
	Decode(payload []byte) (A, error)
}

// JSONCodec encodes actions with encoding/json. It is the right default for
// plain struct actions with exported fields.
type JSONCodec[A any] struct{}

// Encode marshals the action as JSON.
func (JSONCodec[A]) Encode(action A) ([]byte, error) {
	return json.Marshal(action)
}

// Decode unmarshals a JSON payload into a zero action.
func (JSONCodec[A]) Decode(payload []byte) (A, error) {
	var action A
	err := json.Unmarshal(payload, &action)
	return action, err
}
