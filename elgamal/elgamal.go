// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package elgamal implements twisted ElGamal encryption over the
// ristretto255 group, as used for confidential token balances.
//
// A secret key is a nonzero scalar s and the public key is P = s⁻¹·H,
// where H is a second generator with no known discrete log relative to the
// base point G. An amount a is encrypted under randomness r as a Pedersen
// commitment C = a·G + r·H plus a decryption handle D = r·P. The holder of
// s recovers a·G = C − s·D and then solves a small discrete log, so only
// amounts below 2^32 can be decrypted.
//
// # Second generator
//
// H is derived by hashing the compressed base point with SHA3-512 and
// mapping the 64-byte digest into the group with the ristretto255
// hash-to-group map. This matches the derivation used by Solana's
// zk-token-sdk, so public keys are interchangeable with it.
//
// # References
//
//   - ristretto255: https://datatracker.ietf.org/doc/html/rfc9496
//   - Twisted ElGamal: https://eprint.iacr.org/2019/319
package elgamal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"github.com/gtank/ristretto255"
	"golang.org/x/crypto/sha3"

	"github.com/pacanele/solkit/common"
)

const (
	// PubkeySize is the size of a compressed public key
	PubkeySize = 32

	// SecretKeySize is the size of an encoded secret scalar
	SecretKeySize = 32

	// signerDomain prefixes the message a Signer signs to derive a keypair
	signerDomain = "ElGamalSecretKey"
)

var (
	ErrInvalidCurvePoint = errors.New("elgamal: bytes are not a valid ristretto255 point")
	ErrInvalidScalar     = errors.New("elgamal: invalid secret scalar")
	ErrZeroized          = errors.New("elgamal: keypair secret has been zeroized")
	ErrDecryptionFailed  = errors.New("elgamal: amount is out of the decryptable range")
	ErrInvalidSigner     = errors.New("elgamal: signer produced an unusable signature")
)

var (
	pedersenH     *ristretto255.Element
	pedersenHOnce sync.Once
)

// generatorH returns the second Pedersen generator
func generatorH() *ristretto255.Element {
	pedersenHOnce.Do(func() {
		base := ristretto255.NewElement().Base().Encode(nil)
		digest := sha3.Sum512(base)
		pedersenH = ristretto255.NewElement().FromUniformBytes(digest[:])
	})
	return pedersenH
}

// orIdentity maps the nil element of a zero-value Pubkey or Ciphertext to
// the group identity
func orIdentity(e *ristretto255.Element) *ristretto255.Element {
	if e == nil {
		return ristretto255.NewElement().Zero()
	}
	return e
}

// Pubkey is a decompressed ElGamal public key. The zero value is the
// identity element, which no Keypair produces.
type Pubkey struct {
	point *ristretto255.Element
}

// Compress returns the 32-byte encoding of the public key
func (p *Pubkey) Compress() PodPubkey {
	var ret PodPubkey
	orIdentity(p.point).Encode(ret[:0])
	return ret
}

// Equals reports whether both keys are the same group element
func (p *Pubkey) Equals(other *Pubkey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return orIdentity(p.point).Equal(orIdentity(other.point)) == 1
}

func (p *Pubkey) String() string {
	return p.Compress().String()
}

// Keypair holds an ElGamal secret scalar and its public key. It is not safe
// for concurrent use with Zeroize.
type Keypair struct {
	secret *ristretto255.Scalar
	pubkey *Pubkey
}

// NewKeypair generates a keypair from a random nonzero scalar
func NewKeypair() (*Keypair, error) {
	var buf [64]byte
	defer clear(buf[:])
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		secret := ristretto255.NewScalar().FromUniformBytes(buf[:])
		if kp, err := keypairFromScalar(secret); err == nil {
			return kp, nil
		}
	}
}

// KeypairFromSecretKey rebuilds a keypair from a canonical 32-byte scalar
func KeypairFromSecretKey(data []byte) (*Keypair, error) {
	if len(data) != SecretKeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidScalar,
			SecretKeySize,
			len(data),
		)
	}
	secret := ristretto255.NewScalar()
	if err := secret.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScalar, err)
	}
	return keypairFromScalar(secret)
}

// KeypairFromSigner derives a keypair from the signature a Signer produces
// over a fixed domain string followed by publicSeed. The same signer and seed
// always yield the same keypair, so the ElGamal key never has to be stored.
func KeypairFromSigner(signer common.Signer, publicSeed []byte) (*Keypair, error) {
	msg := make([]byte, 0, len(signerDomain)+len(publicSeed))
	msg = append(msg, signerDomain...)
	msg = append(msg, publicSeed...)
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSigner, err)
	}
	if sig.IsZero() {
		return nil, ErrInvalidSigner
	}
	digest := sha3.Sum512(sig[:])
	defer clear(digest[:])
	return keypairFromScalar(ristretto255.NewScalar().FromUniformBytes(digest[:]))
}

func keypairFromScalar(secret *ristretto255.Scalar) (*Keypair, error) {
	if secret.Equal(ristretto255.NewScalar().Zero()) == 1 {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidScalar)
	}
	inv := ristretto255.NewScalar().Invert(secret)
	point := ristretto255.NewElement().ScalarMult(inv, generatorH())
	inv.Zero()
	return &Keypair{
		secret: secret,
		pubkey: &Pubkey{point: point},
	}, nil
}

// Pubkey returns an independent copy of the public key
func (k *Keypair) Pubkey() *Pubkey {
	point := ristretto255.NewElement()
	if err := point.Decode(k.pubkey.point.Encode(nil)); err != nil {
		// Encodings of valid elements always decode
		panic(err)
	}
	return &Pubkey{point: point}
}

// SecretKey returns the 32-byte encoding of the secret scalar
func (k *Keypair) SecretKey() ([]byte, error) {
	if k.secret == nil {
		return nil, ErrZeroized
	}
	return k.secret.Encode(nil), nil
}

// Zeroize overwrites the secret scalar. The public key remains usable.
func (k *Keypair) Zeroize() {
	if k.secret != nil {
		k.secret.Zero()
		k.secret = nil
	}
}

// IsZeroized reports whether the secret has been released
func (k *Keypair) IsZeroized() bool {
	return k.secret == nil
}

// Decrypt recovers the amount from a ciphertext encrypted to this keypair
func (k *Keypair) Decrypt(ct *Ciphertext) (uint64, error) {
	if k.secret == nil {
		return 0, ErrZeroized
	}
	// C - s·D = a·G
	point := ristretto255.NewElement().ScalarMult(k.secret, orIdentity(ct.handle))
	point.Subtract(orIdentity(ct.commitment), point)
	amount, ok := solveDiscreteLog(point)
	if !ok {
		return 0, ErrDecryptionFailed
	}
	return amount, nil
}
