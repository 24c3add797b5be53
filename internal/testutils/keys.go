package testutils

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
)

// KeyPairFromUint32 builds the secp256k1 keypair whose secret key equals
// the given integer. Handy for scenarios that pin down exact key
// material.
func KeyPairFromUint32(v uint32) ([32]byte, *btcec.PublicKey) {
	var secret [32]byte
	binary.BigEndian.PutUint32(secret[28:], v)

	privKey, _ := btcec.PrivKeyFromBytes(secret[:])
	return secret, privKey.PubKey()
}

// GenerateKeyPairs derives a deterministic list of n secp256k1 keypairs
// from a fixed test label, returning the raw secret key encodings and the
// matching public keys in the same order.
func GenerateKeyPairs(n int) ([][32]byte, []*btcec.PublicKey) {
	secrets := make([][32]byte, n)
	pubKeys := make([]*btcec.PublicKey, n)

	for i := 0; i < n; i++ {
		h := sha256.New()
		h.Write([]byte("aggsig test key"))
		var index [4]byte
		binary.BigEndian.PutUint32(index[:], uint32(i))
		h.Write(index[:])
		h.Sum(secrets[i][:0])

		privKey, _ := btcec.PrivKeyFromBytes(secrets[i][:])
		pubKeys[i] = privKey.PubKey()
	}

	return secrets, pubKeys
}
