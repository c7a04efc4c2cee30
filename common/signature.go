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

package common

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// SignatureSize is the size of an ed25519 signature
const SignatureSize = ed25519.SignatureSize

// Signature is an ed25519 signature. The zero value marks an empty slot.
type Signature [SignatureSize]byte

// NewSignatureFromBytes returns a Signature from exactly 64 raw bytes
func NewSignatureFromBytes(data []byte) (Signature, error) {
	var s Signature
	if len(data) != SignatureSize {
		return s, fmt.Errorf(
			"%w: signature: expected %d bytes, got %d",
			ErrInvalidLength,
			SignatureSize,
			len(data),
		)
	}
	copy(s[:], data)
	return s, nil
}

// NewSignatureFromString decodes a base58 Signature
func NewSignatureFromString(s string) (Signature, error) {
	decoded, err := decodeBase58(s)
	if err != nil {
		return Signature{}, err
	}
	return NewSignatureFromBytes(decoded)
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

// Bytes returns a copy of the raw bytes
func (s Signature) Bytes() []byte {
	ret := make([]byte, SignatureSize)
	copy(ret, s[:])
	return ret
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

// Verify reports whether the signature is valid for msg under pubkey
func (s Signature) Verify(pubkey Pubkey, msg []byte) bool {
	return VerifySignature(pubkey, s, msg) == nil
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// VerifySignature verifies an ed25519 signature against the provided public key and message.
func VerifySignature(pubkey Pubkey, sig Signature, msg []byte) error {
	if !ed25519.Verify(ed25519.PublicKey(pubkey[:]), msg, sig[:]) {
		return ErrSignatureVerification
	}
	return nil
}
