package chainstego

import "errors"

// The six error kinds of spec.md §7. Each is a distinct sentinel so
// callers can use errors.Is against a stable, documented set. Returned
// errors wrap the sentinel with %w; the internal cause is formatted into
// the message text with %v, so errors.Is matches the sentinel, not the
// cause.
var (
	// ErrCapacity means L > W*H: the message does not fit in the image.
	ErrCapacity = errors.New("chainstego: message too long for image")

	// ErrCrypto covers AES or HMAC failures.
	ErrCrypto = errors.New("chainstego: crypto failure")

	// ErrKeyFormat means the serialised key was too short, non-hex, or
	// numerically inconsistent (e.g. pos0 >= |S|).
	ErrKeyFormat = errors.New("chainstego: malformed serialised key")

	// ErrDecrypt means decryption yielded invalid plaintext.
	ErrDecrypt = errors.New("chainstego: decryption failed")

	// ErrExhaustedCandidates indicates an encoder invariant violation.
	ErrExhaustedCandidates = errors.New("chainstego: exhausted candidates")

	// ErrCancelled means the caller's context was cancelled at a yield
	// point.
	ErrCancelled = errors.New("chainstego: cancelled")
)
