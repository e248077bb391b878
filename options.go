package chainstego

import "chainstego/internal/obslog"

// DefaultAlias is used when the caller does not specify an alias count t.
// It is a moderate value that keeps |S| well below Q for typical cover
// image sizes while still leaving room before Phase 0 renegotiation kicks
// in for larger messages.
const DefaultAlias = 32

// EncodeOptions configures Encode. The zero value is valid: it picks
// DefaultAlias, reports no progress, and logs nothing.
type EncodeOptions struct {
	// Alias is the caller-suggested alias count t (spec.md §3). 0 means
	// DefaultAlias. The engine may lower it during Phase 0 renegotiation
	// (spec.md §4.3); the effective value actually used is what ends up
	// in the serialised key.
	Alias uint16

	// Key, if exactly cryptoengine.KeySize bytes, is used as the master
	// key K instead of a freshly derived one. This exists for
	// determinism in tests (spec.md §8's round-trip and determinism
	// properties are quantified over a fixed K) and for interop testing;
	// production callers should leave it nil so every encode gets its
	// own key, per spec.md §3's "K generated per encode, never reused".
	Key []byte

	// Progress, if set, receives phase/fraction updates per spec.md §6.
	Progress ProgressSink

	// Logger, if set, receives structured diagnostic logs. Never
	// consulted by the deterministic algorithm itself, only by the
	// orchestration in Encode.
	Logger *obslog.Logger
}

func (o EncodeOptions) alias() uint16 {
	if o.Alias == 0 {
		return DefaultAlias
	}
	return o.Alias
}

func (o EncodeOptions) progress() ProgressSink {
	if o.Progress == nil {
		return noopSink
	}
	return o.Progress
}

// DecodeOptions configures Decode. The zero value is valid.
type DecodeOptions struct {
	Progress ProgressSink
	Logger   *obslog.Logger
}

func (o DecodeOptions) progress() ProgressSink {
	if o.Progress == nil {
		return noopSink
	}
	return o.Progress
}
