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

package elgamal

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/gtank/ristretto255"
)

// Opening is the randomness r used to encrypt an amount. Together with the
// amount it opens the Pedersen commitment.
type Opening struct {
	scalar *ristretto255.Scalar
}

// NewOpening returns fresh random encryption randomness
func NewOpening() *Opening {
	var buf [64]byte
	defer clear(buf[:])
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(buf[:])
	return &Opening{scalar: ristretto255.NewScalar().FromUniformBytes(buf[:])}
}

// Ciphertext is a twisted ElGamal ciphertext: a Pedersen commitment to the
// amount plus a decryption handle bound to one public key. The zero value
// encrypts zero with zero randomness.
type Ciphertext struct {
	commitment *ristretto255.Element
	handle     *ristretto255.Element
}

// Encrypt encrypts amount under fresh randomness and returns the opening
func (p *Pubkey) Encrypt(amount uint64) (*Ciphertext, *Opening) {
	opening := NewOpening()
	return p.EncryptWithOpening(amount, opening), opening
}

// EncryptWithOpening encrypts amount with caller-supplied randomness
func (p *Pubkey) EncryptWithOpening(amount uint64, opening *Opening) *Ciphertext {
	// C = a·G + r·H
	commitment := ristretto255.NewElement().ScalarBaseMult(scalarFromUint64(amount))
	commitment.Add(
		commitment,
		ristretto255.NewElement().ScalarMult(opening.scalar, generatorH()),
	)
	// D = r·P
	handle := ristretto255.NewElement().ScalarMult(opening.scalar, orIdentity(p.point))
	return &Ciphertext{
		commitment: commitment,
		handle:     handle,
	}
}

// Add returns a ciphertext of the sum of both amounts. Both must be
// encrypted to the same public key.
func (c *Ciphertext) Add(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		commitment: ristretto255.NewElement().Add(orIdentity(c.commitment), orIdentity(other.commitment)),
		handle:     ristretto255.NewElement().Add(orIdentity(c.handle), orIdentity(other.handle)),
	}
}

// Subtract returns a ciphertext of the difference of both amounts
func (c *Ciphertext) Subtract(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		commitment: ristretto255.NewElement().Subtract(orIdentity(c.commitment), orIdentity(other.commitment)),
		handle:     ristretto255.NewElement().Subtract(orIdentity(c.handle), orIdentity(other.handle)),
	}
}

// Compress returns the 64-byte encoding: commitment followed by handle
func (c *Ciphertext) Compress() PodCiphertext {
	var ret PodCiphertext
	buf := orIdentity(c.commitment).Encode(ret[:0])
	orIdentity(c.handle).Encode(buf)
	return ret
}

// Equals reports whether both ciphertexts have identical components
func (c *Ciphertext) Equals(other *Ciphertext) bool {
	return orIdentity(c.commitment).Equal(orIdentity(other.commitment)) == 1 &&
		orIdentity(c.handle).Equal(orIdentity(other.handle)) == 1
}

// scalarFromUint64 encodes v as a little-endian scalar. Any uint64 is
// below the group order so the encoding is always canonical.
func scalarFromUint64(v uint64) *ristretto255.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	s := ristretto255.NewScalar()
	if err := s.Decode(buf[:]); err != nil {
		panic(err)
	}
	return s
}
