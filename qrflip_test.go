package aggsig

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"threshold.network/aggsig/internal/testutils"
)

// findSeedWithAggregateQuadY searches session seeds until the running
// public nonce sum lands on the requested quadratic-residue side,
// returning the live session. The sum's sign is effectively a coin flip
// per seed, so a short search always succeeds.
func findSeedWithAggregateQuadY(
	t *testing.T,
	groupSize int,
	wantQuadY bool,
) *Session {
	_, pubKeys := testutils.GenerateKeyPairs(groupSize)

	for attempt := 0; attempt < 64; attempt++ {
		seed := newTestSeed(0x24)
		seed[0] = byte(attempt)

		session, err := NewSession(pubKeys, &seed)
		require.NoError(t, err)

		for i := 0; i < groupSize; i++ {
			require.NoError(t, session.GenerateNonce(i))
		}

		if hasQuadY(&session.pubNonceSum) == wantQuadY {
			return session
		}
		session.Destroy()
	}

	t.Fatalf("no seed found with aggregate quad-y = %v", wantQuadY)
	return nil
}

func TestSigningFlipsNoncesWhenAggregateLacksQuadY(t *testing.T) {
	const groupSize = 3
	msgHash := newTestMessage(0x11)
	secrets, pubKeys := testutils.GenerateKeyPairs(groupSize)

	session := findSeedWithAggregateQuadY(t, groupSize, false)
	defer session.Destroy()

	partials := make([]PartialSignature, groupSize)
	var err error
	for i := 0; i < groupSize; i++ {
		partials[i], err = session.PartialSign(&msgHash, &secrets[i], i)
		require.NoError(t, err)
	}

	// Every signer observes the same non-residue aggregate and flips its
	// own secret nonce; the flips must be unanimous.
	for i := 0; i < groupSize; i++ {
		require.True(t, session.slots[i].flipped, "secret nonce %d must be flipped", i)
	}

	sig, err := session.Combine(partials)
	require.NoError(t, err)
	require.NoError(t, Verify(&sig, &msgHash, pubKeys))
}

func TestSigningKeepsNoncesWhenAggregateHasQuadY(t *testing.T) {
	const groupSize = 3
	msgHash := newTestMessage(0x11)
	secrets, pubKeys := testutils.GenerateKeyPairs(groupSize)

	session := findSeedWithAggregateQuadY(t, groupSize, true)
	defer session.Destroy()

	partials := make([]PartialSignature, groupSize)
	var err error
	for i := 0; i < groupSize; i++ {
		partials[i], err = session.PartialSign(&msgHash, &secrets[i], i)
		require.NoError(t, err)
	}

	for i := 0; i < groupSize; i++ {
		require.False(t, session.slots[i].flipped, "secret nonce %d must be untouched", i)
	}

	sig, err := session.Combine(partials)
	require.NoError(t, err)
	require.NoError(t, Verify(&sig, &msgHash, pubKeys))
}

func TestEverySummandHasQuadY(t *testing.T) {
	const groupSize = 8
	_, pubKeys := testutils.GenerateKeyPairs(groupSize)
	seed := newTestSeed(0x42)

	session, err := NewSession(pubKeys, &seed)
	require.NoError(t, err)
	defer session.Destroy()

	for i := 0; i < groupSize; i++ {
		require.NoError(t, session.GenerateNonce(i))

		// The public point of the stored secret nonce must always sit on
		// the quadratic-residue side, whichever sign the raw draw had.
		var pubNonce btcec.JacobianPoint
		btcec.ScalarBaseMultNonConst(&session.slots[i].secNonce, &pubNonce)
		require.True(t, hasQuadY(&pubNonce), "summand %d must have quad-y", i)
	}
}
