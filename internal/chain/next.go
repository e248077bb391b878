// Package chain implements ChainBuilder (encoder) and ChainWalker (decoder):
// the keyed-hash-linked walk across the candidate set S that spells out the
// ciphertext, per spec.md §4.3/§4.4.
package chain

import (
	"encoding/binary"

	"chainstego/internal/cryptoengine"
	"chainstego/internal/pointerset"
)

// Next implements spec.md §3's pointer-resolution function:
//
//	next(K, p) = ( HMAC_SHA256(K, be16(p))[0:2] as u16_be ) mod |S|
func Next(key []byte, p uint16, sizeS int) int {
	var msg [2]byte
	binary.BigEndian.PutUint16(msg[:], p)
	tag := cryptoengine.HMACSHA256(key, msg[:])
	v := binary.BigEndian.Uint16(tag[:2])
	return int(v) % sizeS
}

// PointerTable precomputes p -> next(K,p) for every p in [0,Q), plus the
// inverse bucketing pos -> {p : next(K,p) = pos}, turning ChainBuilder's
// "which pointers are valid for this target" query into an O(1) lookup as
// described in spec.md §4.3's complexity note and §9's "precomputed
// pointer table" re-architecture pattern.
type PointerTable struct {
	nextOf [pointerset.Q]uint16 // p -> position in S
	bucket [][]uint16           // position in S -> list of p
}

// BuildPointerTable computes the full table for a given key and |S|.
func BuildPointerTable(key []byte, sizeS int) *PointerTable {
	t := &PointerTable{bucket: make([][]uint16, sizeS)}
	for p := 0; p < pointerset.Q; p++ {
		pos := Next(key, uint16(p), sizeS)
		t.nextOf[p] = uint16(pos)
		t.bucket[pos] = append(t.bucket[pos], uint16(p))
	}
	return t
}

// Next returns the precomputed next(K,p).
func (t *PointerTable) Next(p uint16) int { return int(t.nextOf[p]) }

// ValidPointers returns { p : next(K,p) == pos }, in ascending p order.
func (t *PointerTable) ValidPointers(pos int) []uint16 { return t.bucket[pos] }
