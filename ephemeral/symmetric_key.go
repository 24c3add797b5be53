package ephemeral

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/nacl/secretbox"
)

// nonceSize is the byte length of the random nonce carried in front of
// every sealed message.
const nonceSize = 24

// SymmetricKey is an authenticated symmetric cipher keyed by an Elliptic
// Curve Diffie-Hellman exchange between two ephemeral keypairs. Both
// sides of the exchange derive the same key, so a message sealed by one
// party opens on the other.
type SymmetricKey struct {
	key [sha256.Size]byte
}

// Ecdh performs the Elliptic Curve Diffie-Hellman operation between the
// private key and the other party's public key and returns the resulting
// SymmetricKey.
func (pk *PrivateKey) Ecdh(publicKey *PublicKey) *SymmetricKey {
	shared := btcec.GenerateSharedSecret(
		(*btcec.PrivateKey)(pk),
		(*btcec.PublicKey)(publicKey),
	)

	return &SymmetricKey{key: sha256.Sum256(shared)}
}

// Seal encrypts and authenticates the plaintext under a fresh random
// nonce. The nonce occupies the first bytes of the returned ciphertext.
func (sk *SymmetricKey) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("symmetric key encryption failed [%v]", err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, &sk.key), nil
}

// Open authenticates and decrypts a ciphertext produced by Seal.
func (sk *SymmetricKey) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("symmetric key decryption failed")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, &sk.key)
	if !ok {
		return nil, fmt.Errorf("symmetric key decryption failed")
	}

	return plaintext, nil
}
