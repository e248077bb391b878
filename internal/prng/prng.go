// Package prng implements the deterministic CSPRNG the engine seeds from
// the master key K. It is an explicit value, not module-level state
// (spec.md §9's "deterministic PRNG as an explicit state object"
// re-architecture note): two DRBGs built from the same seed string produce
// bit-identical output, which is the cross-component invariant PointerSet
// construction depends on.
package prng

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
)

// DRBG is a minimal HMAC-DRBG (NIST SP 800-90A) keyed on a seed string.
// spec.md §9 Open Question 2 explicitly suggests standardising on
// HMAC-DRBG(K) for interoperability; this is that implementation.
type DRBG struct {
	k []byte // current HMAC key
	v []byte // current HMAC chaining value
}

const hashSize = sha256.Size

// New seeds a DRBG from an arbitrary seed byte string, per the
// instantiate step of HMAC-DRBG.
func New(seed []byte) *DRBG {
	d := &DRBG{
		k: make([]byte, hashSize),
		v: make([]byte, hashSize),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.update(seed)
	return d
}

// NewFromHexKey seeds a DRBG from the hex-string form of the master key K,
// exactly as spec.md §4.2 specifies ("the reference seeds a stream
// cipher-class PRNG with this [hex] string").
func NewFromHexKey(hexKey string) *DRBG {
	return New([]byte(hexKey))
}

func (d *DRBG) hmac(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// update implements the HMAC-DRBG Update function with optional additional
// input material.
func (d *DRBG) update(providedData []byte) {
	input := append(append([]byte{}, d.v...), 0x00)
	input = append(input, providedData...)
	d.k = d.hmac(d.k, input)
	d.v = d.hmac(d.k, d.v)
	if len(providedData) == 0 {
		return
	}
	input = append(append([]byte{}, d.v...), 0x01)
	input = append(input, providedData...)
	d.k = d.hmac(d.k, input)
	d.v = d.hmac(d.k, d.v)
}

// generate returns n pseudorandom bytes, advancing the internal state.
func (d *DRBG) generate(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		d.v = d.hmac(d.k, d.v)
		out = append(out, d.v...)
	}
	out = out[:n]
	d.update(nil)
	return out
}

// NextFloatUnit returns a value in [0, 1), the CSPRNG's sole exposed
// primitive per spec.md §4.2.
func (d *DRBG) NextFloatUnit() float64 {
	b := d.generate(8)
	u := binary.BigEndian.Uint64(b)
	f := float64(u) / (1 << 64)
	if f >= 1 {
		// u within 2^10 of 2^64 rounds up to 2^64 in float64.
		f = 1 - 1.0/(1<<53)
	}
	return f
}

// NextIndex returns a uniformly distributed index in [0, n).
func (d *DRBG) NextIndex(n int) int {
	i := int(d.NextFloatUnit() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
