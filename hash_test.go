package aggsig

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"threshold.network/aggsig/internal/testutils"
)

func TestPrehashComposition(t *testing.T) {
	msgHash := newTestMessage(0x11)
	_, pubKeys := testutils.GenerateKeyPairs(3)

	var one btcec.ModNScalar
	one.SetInt(1)
	var nonce btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&one, &nonce)

	h := sha256.New()
	for _, pubKey := range pubKeys {
		h.Write(pubKey.SerializeCompressed())
	}
	h.Write(serializeCompressed(&nonce))
	h.Write(msgHash[:])
	var expected [sha256.Size]byte
	h.Sum(expected[:0])

	actual := computePrehash(pubKeys, &nonce, &msgHash)
	require.Equal(t, expected, actual)
}

func TestChallengeIndexEncoding(t *testing.T) {
	var prehash [sha256.Size]byte
	for i := range prehash {
		prehash[i] = byte(i)
	}

	// The index is folded in as little-endian 7-bit limbs; index 0
	// contributes nothing.
	var tests = map[string]struct {
		index    int
		expected []byte
	}{
		"index 0":   {index: 0, expected: nil},
		"index 1":   {index: 1, expected: []byte{0x01}},
		"index 127": {index: 127, expected: []byte{0x7f}},
		"index 128": {index: 128, expected: []byte{0x00, 0x01}},
		"index 300": {index: 300, expected: []byte{0x2c, 0x02}},
	}

	for testName, test := range tests {
		t.Run(testName, func(t *testing.T) {
			h := sha256.New()
			h.Write(test.expected)
			h.Write(prehash[:])
			var digest [sha256.Size]byte
			h.Sum(digest[:0])

			var expected btcec.ModNScalar
			expected.SetBytes(&digest)
			var expectedBytes [32]byte
			expected.PutBytes(&expectedBytes)

			var challenge btcec.ModNScalar
			require.NoError(t, computeChallenge(&challenge, &prehash, test.index))

			var actualBytes [32]byte
			challenge.PutBytes(&actualBytes)

			require.Equal(t, expectedBytes, actualBytes)
		})
	}
}

func TestChallengeDistinctPerIndex(t *testing.T) {
	var prehash [sha256.Size]byte

	var c0, c1 btcec.ModNScalar
	require.NoError(t, computeChallenge(&c0, &prehash, 0))
	require.NoError(t, computeChallenge(&c1, &prehash, 1))

	var b0, b1 [32]byte
	c0.PutBytes(&b0)
	c1.PutBytes(&b1)

	require.NotEqual(t, b0, b1, "challenges for distinct indices must differ")
}
