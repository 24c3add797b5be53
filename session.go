// Package aggsig implements an n-of-n aggregate Schnorr signing protocol
// over the secp256k1 curve.
//
// A fixed roster of signers, each holding the private key for one entry of
// an ordered public key list, cooperates to produce a single 64-byte
// signature over a 32-byte message digest. The signature verifies against
// the whole roster without identifying any individual signer.
//
// The protocol is a three-phase ceremony driven through a Session:
//
//  1. every signer index gets a nonce via GenerateNonce;
//  2. once all nonces are known, each signer produces a 32-byte partial
//     signature via PartialSign;
//  3. the partials are summed into the final signature via Combine.
//
// Verify checks a combined signature against the roster and message and
// needs no session.
//
// A Session is not safe for concurrent use; callers serialise access.
// Nonces are strictly single-use: a seed deterministically fixes every
// nonce of its session, so reusing a seed across sessions leaks secret
// keys. Derive a fresh seed per ceremony, for example with DeriveSeed.
package aggsig

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"threshold.network/aggsig/internal/rfc6979"
)

const (
	// MessageHashSize is the byte length of the message digest being
	// signed.
	MessageHashSize = 32

	// SecretKeySize is the byte length of a signer's serialized secret
	// key.
	SecretKeySize = 32

	// SeedSize is the byte length of the session seed.
	SeedSize = 32

	// PartialSignatureSize is the byte length of one signer's partial
	// signature: a single scalar, big-endian.
	PartialSignatureSize = 32

	// SignatureSize is the byte length of the combined signature:
	// s followed by the x coordinate of the aggregate public nonce.
	SignatureSize = 64
)

// PartialSignature is one signer's contribution s_i = x_i*e_i + k_i,
// serialized as a big-endian scalar.
type PartialSignature [PartialSignatureSize]byte

var (
	// ErrRosterRequired is returned when the roster is nil or empty
	// where at least one public key is needed.
	ErrRosterRequired = errors.New("roster is required")

	// ErrNilRosterKey is returned when a roster entry is nil.
	ErrNilRosterKey = errors.New("roster contains a nil public key")

	// ErrSeedRequired is returned when no session seed is provided.
	ErrSeedRequired = errors.New("seed is required")

	// ErrArgumentRequired is returned when a required pointer argument
	// is nil.
	ErrArgumentRequired = errors.New("required argument is nil")

	// ErrSessionDestroyed is returned when an operation is attempted on
	// a destroyed session.
	ErrSessionDestroyed = errors.New("session has been destroyed")

	// ErrIndexOutOfRange is returned when the signer index does not
	// address a roster entry.
	ErrIndexOutOfRange = errors.New("signer index out of range")

	// ErrNonceAlreadyGenerated is returned when a nonce was already
	// generated for the index.
	ErrNonceAlreadyGenerated = errors.New("nonce already generated for this index")

	// ErrNoncesIncomplete is returned when signing is attempted before
	// every index has a known public nonce.
	ErrNoncesIncomplete = errors.New("not all public nonces are known")

	// ErrNonceAlreadyUsed is returned when an index attempts to sign a
	// second time. Signing twice with one nonce reveals the secret key.
	ErrNonceAlreadyUsed = errors.New("nonce already used for signing")

	// ErrNonceNotOurs is returned when the index holds no locally
	// generated nonce to sign with.
	ErrNonceNotOurs = errors.New("no local secret nonce for this index")

	// ErrSecretKeyOverflow is returned when the secret key encoding is
	// not a canonical scalar.
	ErrSecretKeyOverflow = errors.New("secret key overflows the group order")

	// ErrChallengeOverflow is returned when a derived per-index
	// challenge is not a canonical scalar. The caller aborts this
	// ceremony.
	ErrChallengeOverflow = errors.New("challenge overflows the group order")

	// ErrPartialOverflow is returned when a partial signature encoding
	// is not a canonical scalar.
	ErrPartialOverflow = errors.New("partial signature overflows the group order")

	// ErrPartialCount is returned when the number of partial signatures
	// does not match the roster size.
	ErrPartialCount = errors.New("wrong number of partial signatures")

	// ErrAggregateNonceUnavailable is returned when the aggregate
	// public nonce is the point at infinity, i.e. no nonce was ever
	// folded into the session.
	ErrAggregateNonceUnavailable = errors.New("aggregate public nonce is unavailable")

	// ErrSignatureInvalid is returned by Verify when the signature does
	// not verify against the roster and message.
	ErrSignatureInvalid = errors.New("signature is invalid")
)

// nonceProgress tracks how far a single signer index has advanced through
// the ceremony.
type nonceProgress uint8

const (
	// nonceProgressUnknown means no nonce exists for the index yet.
	nonceProgressUnknown nonceProgress = iota

	// nonceProgressOther is reserved for public nonces received from
	// another party. No operation currently transitions to it; importing
	// external nonces needs an explicit protocol extension first.
	nonceProgressOther

	// nonceProgressOurs means the secret nonce was generated locally and
	// has not been used in signing.
	nonceProgressOurs

	// nonceProgressSigned means the secret nonce has been consumed.
	// The index can never sign again within this session.
	nonceProgressSigned
)

// signerSlot couples one index's progress tag with the secret nonce it
// guards, so the nonce cannot be read while the state says none exists.
type signerSlot struct {
	progress nonceProgress
	secNonce btcec.ModNScalar

	// flipped records whether PartialSign negated secNonce to
	// compensate for the aggregate nonce sign. PartialSign reads it so a
	// retry after a failed call does not negate the nonce a second time;
	// the white-box tests read it too.
	flipped bool
}

// Session holds all per-ceremony signer state: the roster, per-index
// nonce progress, the running public nonce sum, and the deterministic
// nonce generator.
type Session struct {
	roster []*btcec.PublicKey
	slots  []signerSlot

	// pubNonceSum is the running sum of all public nonces. Every summand
	// is added as its quadratic-residue-y representative; the sum itself
	// is canonicalised lazily at signing and combination time.
	pubNonceSum btcec.JacobianPoint

	rng *rfc6979.Generator
}

// NewSession creates a signing session over the given roster, seeded with
// 32 bytes of fresh entropy. The roster order is fixed for the lifetime
// of the session; signer index i corresponds to roster[i].
//
// The seed fully determines every nonce of the session and must never be
// reused with another session.
func NewSession(roster []*btcec.PublicKey, seed *[SeedSize]byte) (*Session, error) {
	if roster == nil {
		return nil, ErrRosterRequired
	}
	if seed == nil {
		return nil, ErrSeedRequired
	}
	for _, pubKey := range roster {
		if pubKey == nil {
			return nil, ErrNilRosterKey
		}
	}

	s := &Session{
		roster: make([]*btcec.PublicKey, len(roster)),
		slots:  make([]signerSlot, len(roster)),
		rng:    rfc6979.New(seed[:]),
	}
	copy(s.roster, roster)
	// The zero-value pubNonceSum is the point at infinity.

	return s, nil
}

// GroupSize returns the number of signers in the session roster.
func (s *Session) GroupSize() int {
	return len(s.slots)
}

// Destroy zeroises all secret-bearing session state and renders the
// session unusable. It is safe to call on a nil session and safe to call
// more than once.
func (s *Session) Destroy() {
	if s == nil {
		return
	}

	for i := range s.slots {
		s.slots[i].secNonce.Zero()
		s.slots[i].progress = nonceProgressUnknown
		s.slots[i].flipped = false
	}
	s.slots = nil

	for i := range s.roster {
		s.roster[i] = nil
	}
	s.roster = nil

	s.pubNonceSum = btcec.JacobianPoint{}

	if s.rng != nil {
		s.rng.Wipe()
		s.rng = nil
	}
}

// destroyed reports whether Destroy has already run.
func (s *Session) destroyed() bool {
	return s.rng == nil
}

// zeroBytes overwrites b with zeroes.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
