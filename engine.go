// Package chainstego implements the pointer-chain steganographic engine of
// spec.md: a deterministic algorithm that derives a keyed pseudorandom
// candidate-pixel set, builds a keyed-hash-linked chain across it spelling
// out an AES-256 ciphertext, and chooses per-step modifications that
// minimise a per-pixel distortion metric. Decode, and Encode given a fixed
// EncodeOptions.Key, are pure functions of their inputs; see internal/chain, internal/pointerset,
// internal/prng, internal/cryptoengine, internal/pixelgrid and
// internal/keycodec for the six components spec.md §2 names.
package chainstego

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"chainstego/internal/chain"
	"chainstego/internal/cryptoengine"
	"chainstego/internal/keycodec"
	"chainstego/internal/obslog"
	"chainstego/internal/pixelgrid"
	"chainstego/internal/pointerset"
	"chainstego/internal/prng"
)

// Image is the RGBA byte grid black box of spec.md §6: W*H*4 bytes,
// row-major, R at offset 0 of each pixel. PNG/JPEG decoding and
// re-encoding is the caller's responsibility.
type Image struct {
	W, H int
	Pix  []byte
}

// EncodeResult bundles the stego image, its serialised key, and the
// completion statistics of spec.md §6.
type EncodeResult struct {
	Image Image
	Key   string
	Stats Stats
}

// Encode hides plaintext inside cover under a freshly generated master key,
// or under opts.Key when it is exactly cryptoengine.KeySize bytes, per
// spec.md §4.1-§4.3. It never mutates cover.Pix; the returned Image
// owns a fresh buffer.
func Encode(ctx context.Context, cover Image, plaintext []byte, opts EncodeOptions) (EncodeResult, error) {
	report := opts.progress()
	logger := opts.Logger
	wh := cover.W * cover.H

	key := opts.Key
	if len(key) != cryptoengine.KeySize {
		var err error
		key, err = cryptoengine.DeriveMasterKey()
		if err != nil {
			logErr(logger, err, "derive master key failed")
			return EncodeResult{}, fmt.Errorf("%w: %v", ErrCrypto, err)
		}
	}

	ciphertext, err := cryptoengine.EncryptAES256(key, plaintext)
	if err != nil {
		logErr(logger, err, "encrypt failed")
		return EncodeResult{}, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	logPhase(logger, PhaseEncrypt, 0.1)
	report(0.1, PhaseEncrypt)

	l := len(ciphertext)
	if err := pointerset.CheckCapacity(l, wh); err != nil {
		logErr(logger, err, "capacity check failed")
		return EncodeResult{}, fmt.Errorf("%w: %v", ErrCapacity, err)
	}

	// Phase 0: alias renegotiation (spec.md §4.3).
	t := opts.alias()
	if pointerset.Size(int(t), wh) < l {
		t = uint16(max(1, pointerset.Q/l))
	}

	if err := checkCancelled(ctx); err != nil {
		logErr(logger, err, "cancelled before pixel selection")
		return EncodeResult{}, err
	}
	drbg := prng.NewFromHexKey(hex.EncodeToString(key))
	s, err := pointerset.Build(drbg, wh, int(t))
	if err != nil {
		logErr(logger, err, "candidate set construction failed")
		return EncodeResult{}, fmt.Errorf("%w: %v", ErrCapacity, err)
	}
	logPhase(logger, PhaseSelectPixels, 0.3)
	report(0.3, PhaseSelectPixels)

	if err := checkCancelled(ctx); err != nil {
		logErr(logger, err, "cancelled before pointer preparation")
		return EncodeResult{}, err
	}
	logPhase(logger, PhasePreparePointers, 0.4)
	report(0.4, PhasePreparePointers)

	grid, err := pixelgrid.FromBytes(cover.W, cover.H, cloneBytes(cover.Pix))
	if err != nil {
		logErr(logger, err, "cover image decode failed")
		return EncodeResult{}, fmt.Errorf("%w: %v", ErrCapacity, err)
	}
	before := grid.Clone()

	pos0, err := chain.Build(key, grid, s, ciphertext, func(done, total int) error {
		frac := 0.4 + 0.4*float64(done)/float64(total)
		logPhase(logger, PhaseEncodeBytes, frac)
		report(frac, PhaseEncodeBytes)
		return checkCancelled(ctx)
	})
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			logErr(logger, err, "cancelled during chain construction")
			return EncodeResult{}, err
		}
		logErr(logger, err, "chain construction failed")
		return EncodeResult{}, fmt.Errorf("%w: %v", ErrExhaustedCandidates, err)
	}
	logPhase(logger, PhaseWritePixels, 0.9)
	report(0.9, PhaseWritePixels)

	serialised, err := keycodec.Serialise(keycodec.Key{K: key, T: t, L: uint16(l), Pos0: pos0}, wh)
	if err != nil {
		logErr(logger, err, "key serialisation failed")
		return EncodeResult{}, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	logPhase(logger, PhasePackageKey, 0.95)
	report(0.95, PhasePackageKey)

	stats := computeStats(before, grid, l)
	logPhase(logger, PhaseDone, 1.0)
	report(1.0, PhaseDone)

	return EncodeResult{
		Image: Image{W: cover.W, H: cover.H, Pix: grid.Bytes()},
		Key:   serialised,
		Stats: stats,
	}, nil
}

// Decode recovers the plaintext hidden in stego by the holder of
// serialisedKey, per spec.md §4.4. It does not require the original cover
// image or plaintext.
func Decode(ctx context.Context, stego Image, serialisedKey string, opts DecodeOptions) ([]byte, error) {
	report := opts.progress()
	logger := opts.Logger
	wh := stego.W * stego.H

	k, err := keycodec.Parse(serialisedKey, wh)
	if err != nil {
		logErr(logger, err, "key parse failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	logPhase(logger, PhaseSelectPixels, 0.1)
	report(0.1, PhaseSelectPixels)

	if err := checkCancelled(ctx); err != nil {
		logErr(logger, err, "cancelled before pointer preparation")
		return nil, err
	}
	drbg := prng.NewFromHexKey(hex.EncodeToString(k.K))
	s, err := pointerset.Build(drbg, wh, int(k.T))
	if err != nil {
		logErr(logger, err, "candidate set construction failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	logPhase(logger, PhasePreparePointers, 0.3)
	report(0.3, PhasePreparePointers)

	grid, err := pixelgrid.FromBytes(stego.W, stego.H, stego.Pix)
	if err != nil {
		logErr(logger, err, "stego image decode failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}

	ciphertext, err := chain.Walk(k.K, grid, s, k.Pos0, int(k.L), func(done, total int) error {
		frac := 0.3 + 0.4*float64(done)/float64(total)
		logPhase(logger, PhaseEncodeBytes, frac)
		report(frac, PhaseEncodeBytes)
		return checkCancelled(ctx)
	})
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			logErr(logger, err, "cancelled during chain walk")
			return nil, err
		}
		logErr(logger, err, "chain walk failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyFormat, err)
	}
	logPhase(logger, PhaseWritePixels, 0.8)
	report(0.8, PhaseWritePixels)

	plaintext, err := cryptoengine.DecryptAES256(k.K, ciphertext)
	if err != nil {
		logErr(logger, err, "decrypt failed")
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	logPhase(logger, PhaseDone, 1.0)
	report(1.0, PhaseDone)

	return plaintext, nil
}

func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	default:
		return nil
	}
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// logPhase and logErr are no-ops when opts.Logger is nil, so Encode/Decode
// stay free of side effects for callers that don't ask for logging.
func logPhase(logger *obslog.Logger, phase Phase, fraction float64) {
	if logger == nil {
		return
	}
	logger.Phase(string(phase), fraction)
}

func logErr(logger *obslog.Logger, err error, msg string) {
	if logger == nil {
		return
	}
	logger.Error().Err(err).Msg(msg)
}
