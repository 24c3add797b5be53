// Package ephemeral wraps single-use elliptic curve keypairs and the
// authenticated symmetric keys derived from them via Diffie-Hellman.
// Signers use it to protect partial signatures sent over untrusted
// transport during a signing ceremony; the keys are meant to be
// generated per ceremony and thrown away afterwards.
package ephemeral

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PrivateKey is an ephemeral private elliptic curve key.
type PrivateKey btcec.PrivateKey

// PublicKey is an ephemeral public elliptic curve key.
type PublicKey btcec.PublicKey

// PublicKeySize is the byte length of a marshalled public key.
const PublicKeySize = 33

// KeyPair represents the generated ephemeral keypair.
type KeyPair struct {
	PrivateKey *PrivateKey
	PublicKey  *PublicKey
}

// GenerateKeyPair generates a new, random ephemeral keypair.
func GenerateKeyPair() (*KeyPair, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("could not generate new ephemeral keypair [%v]", err)
	}

	return &KeyPair{
		PrivateKey: (*PrivateKey)(privKey),
		PublicKey:  (*PublicKey)(privKey.PubKey()),
	}, nil
}

// Marshal turns the public key into its 33-byte compressed serialized
// form.
func (pk *PublicKey) Marshal() []byte {
	return (*btcec.PublicKey)(pk).SerializeCompressed()
}

// UnmarshalPublicKey turns a 33-byte compressed serialized public key
// back into its typed form.
func UnmarshalPublicKey(bytes []byte) (*PublicKey, error) {
	pubKey, err := btcec.ParsePubKey(bytes)
	if err != nil {
		return nil, fmt.Errorf("invalid public key [%v]", err)
	}

	return (*PublicKey)(pubKey), nil
}
