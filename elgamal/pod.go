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
	"encoding/base64"
	"fmt"

	"github.com/gtank/ristretto255"

	"github.com/pacanele/solkit/common"
)

// PodCiphertextSize is the size of a compressed ciphertext
const PodCiphertextSize = 64

// PodPubkey is the compressed 32-byte form of a public key. It can hold any
// bytes; Decompress checks that they encode a group element.
type PodPubkey [PubkeySize]byte

// NewPodPubkey resolves the boundary Input into a PodPubkey. Text input is base64.
func NewPodPubkey(in common.Input) (PodPubkey, error) {
	var ret PodPubkey
	data, err := inputBytes(in)
	if err != nil {
		return ret, err
	}
	if len(data) != PubkeySize {
		return ret, fmt.Errorf(
			"%w: elgamal pubkey: expected %d bytes, got %d",
			common.ErrInvalidLength,
			PubkeySize,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// Decompress decodes the point, failing with ErrInvalidCurvePoint for
// bytes that are not a canonical ristretto255 encoding
func (p PodPubkey) Decompress() (*Pubkey, error) {
	point := ristretto255.NewElement()
	if err := point.Decode(p[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCurvePoint, err)
	}
	return &Pubkey{point: point}, nil
}

func (p PodPubkey) Equals(other PodPubkey) bool {
	return p == other
}

func (p PodPubkey) Bytes() []byte {
	ret := make([]byte, PubkeySize)
	copy(ret, p[:])
	return ret
}

func (p PodPubkey) String() string {
	return base64.StdEncoding.EncodeToString(p[:])
}

func (p PodPubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PodPubkey) UnmarshalText(text []byte) error {
	tmp, err := NewPodPubkey(common.TextInput(text))
	if err != nil {
		return err
	}
	*p = tmp
	return nil
}

// PodCiphertext is the compressed 64-byte form of a ciphertext
type PodCiphertext [PodCiphertextSize]byte

// NewPodCiphertext resolves the boundary Input into a PodCiphertext. Text input is base64.
func NewPodCiphertext(in common.Input) (PodCiphertext, error) {
	var ret PodCiphertext
	data, err := inputBytes(in)
	if err != nil {
		return ret, err
	}
	if len(data) != PodCiphertextSize {
		return ret, fmt.Errorf(
			"%w: elgamal ciphertext: expected %d bytes, got %d",
			common.ErrInvalidLength,
			PodCiphertextSize,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// Decompress decodes both points of the ciphertext
func (p PodCiphertext) Decompress() (*Ciphertext, error) {
	commitment := ristretto255.NewElement()
	if err := commitment.Decode(p[:PubkeySize]); err != nil {
		return nil, fmt.Errorf("%w: commitment: %w", ErrInvalidCurvePoint, err)
	}
	handle := ristretto255.NewElement()
	if err := handle.Decode(p[PubkeySize:]); err != nil {
		return nil, fmt.Errorf("%w: handle: %w", ErrInvalidCurvePoint, err)
	}
	return &Ciphertext{
		commitment: commitment,
		handle:     handle,
	}, nil
}

func (p PodCiphertext) String() string {
	return base64.StdEncoding.EncodeToString(p[:])
}

func (p PodCiphertext) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PodCiphertext) UnmarshalText(text []byte) error {
	tmp, err := NewPodCiphertext(common.TextInput(text))
	if err != nil {
		return err
	}
	*p = tmp
	return nil
}

func inputBytes(in common.Input) ([]byte, error) {
	switch v := in.(type) {
	case common.TextInput:
		data, err := base64.StdEncoding.DecodeString(string(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidEncoding, err)
		}
		return data, nil
	case common.BytesInput:
		return v, nil
	default:
		return nil, common.ErrNilInput
	}
}
