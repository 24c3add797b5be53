package ephemeral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newEcdhSymmetricKey(t *testing.T) *SymmetricKey {
	keyPair1, err := GenerateKeyPair()
	require.NoError(t, err)

	keyPair2, err := GenerateKeyPair()
	require.NoError(t, err)

	return keyPair1.PrivateKey.Ecdh(keyPair2.PublicKey)
}

func TestSealOpen(t *testing.T) {
	msg := "I’m just a little black rain cloud, hovering under the honey tree."

	symmetricKey := newEcdhSymmetricKey(t)

	sealed, err := symmetricKey.Seal([]byte(msg))
	require.NoError(t, err)

	opened, err := symmetricKey.Open(sealed)
	require.NoError(t, err)

	require.Equal(t, msg, string(opened))
}

func TestCiphertextRandomized(t *testing.T) {
	msg := `You can't stay in your corner of the forest waiting
			 for others to come to you. You have to go to them sometimes.`

	symmetricKey := newEcdhSymmetricKey(t)

	sealed1, err := symmetricKey.Seal([]byte(msg))
	require.NoError(t, err)

	sealed2, err := symmetricKey.Seal([]byte(msg))
	require.NoError(t, err)

	require.Equal(t, len(sealed1), len(sealed2))
	require.NotEqual(t, sealed1, sealed2)
}

func TestEcdhKeysMatch(t *testing.T) {
	keyPair1, err := GenerateKeyPair()
	require.NoError(t, err)
	keyPair2, err := GenerateKeyPair()
	require.NoError(t, err)

	msg := []byte("some protocol message")

	sealed, err := keyPair1.PrivateKey.Ecdh(keyPair2.PublicKey).Seal(msg)
	require.NoError(t, err)

	opened, err := keyPair2.PrivateKey.Ecdh(keyPair1.PublicKey).Open(sealed)
	require.NoError(t, err)

	require.Equal(t, msg, opened)
}

func TestGracefullyHandleBrokenCipher(t *testing.T) {
	symmetricKey := newEcdhSymmetricKey(t)

	brokenCipher := []byte{0x01, 0x02, 0x03}

	_, err := symmetricKey.Open(brokenCipher)
	require.EqualError(t, err, "symmetric key decryption failed")
}

func TestTamperedCiphertextRejected(t *testing.T) {
	symmetricKey := newEcdhSymmetricKey(t)

	sealed, err := symmetricKey.Seal([]byte("attested content"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0x01

	_, err = symmetricKey.Open(sealed)
	require.EqualError(t, err, "symmetric key decryption failed")
}

func TestPublicKeyMarshalRoundtrip(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	require.NoError(t, err)

	marshalled := keyPair.PublicKey.Marshal()
	require.Len(t, marshalled, PublicKeySize)

	unmarshalled, err := UnmarshalPublicKey(marshalled)
	require.NoError(t, err)

	require.Equal(t, marshalled, unmarshalled.Marshal())
}
