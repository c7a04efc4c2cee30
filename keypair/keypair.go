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

// Package keypair implements the ed25519 signing identity used to sign
// transaction messages.
//
// A Keypair owns its secret material. Callers release it with Zeroize,
// usually via defer, on every exit path:
//
//	kp, err := keypair.Generate()
//	if err != nil {
//		return err
//	}
//	defer kp.Zeroize()
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/pacanele/solkit/common"
)

const (
	// SeedSize is the size of the ed25519 secret seed
	SeedSize = ed25519.SeedSize

	// KeypairSize is the size of the serialized form: secret seed || public key
	KeypairSize = ed25519.PrivateKeySize
)

var (
	ErrKeypairMismatch = errors.New("keypair public key does not match secret key")
	ErrZeroized        = errors.New("keypair secret has been zeroized")
)

// Keypair is an ed25519 keypair. It implements common.Signer. A Keypair is
// not safe for concurrent use with Zeroize.
type Keypair struct {
	secret ed25519.PrivateKey
	pubkey common.Pubkey
}

// Generate creates a new keypair from the system's secure random source
func Generate() (*Keypair, error) {
	seed := make([]byte, SeedSize)
	defer clear(seed)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to read random seed: %w", err)
	}
	return FromSeed(seed)
}

// FromSeed creates a keypair from a 32-byte secret seed. The seed is copied.
func FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf(
			"%w: seed: expected %d bytes, got %d",
			common.ErrInvalidLength,
			SeedSize,
			len(seed),
		)
	}
	secret := ed25519.NewKeyFromSeed(seed)
	k := &Keypair{secret: secret}
	copy(k.pubkey[:], secret[SeedSize:])
	return k, nil
}

// FromBytes reconstructs a keypair from its 64-byte serialized form. The
// public half is recomputed from the secret half and must match the
// embedded one.
func FromBytes(data []byte) (*Keypair, error) {
	if len(data) != KeypairSize {
		return nil, fmt.Errorf(
			"%w: keypair: expected %d bytes, got %d",
			common.ErrInvalidLength,
			KeypairSize,
			len(data),
		)
	}
	k, err := FromSeed(data[:SeedSize])
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(k.pubkey[:], data[SeedSize:]) != 1 {
		k.Zeroize()
		return nil, ErrKeypairMismatch
	}
	return k, nil
}

// ToBytes returns a copy of the serialized keypair (secret seed || public key).
// The caller owns the returned secret material and should clear it when done.
func (k *Keypair) ToBytes() []byte {
	ret := make([]byte, KeypairSize)
	if k.secret != nil {
		copy(ret, k.secret)
	}
	return ret
}

// Pubkey returns the address of the keypair
func (k *Keypair) Pubkey() common.Pubkey {
	return k.pubkey
}

// Sign signs the message with the keypair's secret key
func (k *Keypair) Sign(message []byte) (common.Signature, error) {
	if k.secret == nil {
		return common.Signature{}, ErrZeroized
	}
	var sig common.Signature
	copy(sig[:], ed25519.Sign(k.secret, message))
	return sig, nil
}

// Zeroize overwrites the secret key material. It is safe to call more than once.
func (k *Keypair) Zeroize() {
	clear(k.secret)
	k.secret = nil
}

// IsZeroized reports whether the secret has been released
func (k *Keypair) IsZeroized() bool {
	return k.secret == nil
}

func (k *Keypair) String() string {
	// Never print secret material
	return k.pubkey.String()
}
