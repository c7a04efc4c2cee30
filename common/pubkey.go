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
	"bytes"
	"encoding/json"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	PubkeySize = 32

	// MaxBase58PubkeyLen is the longest base58 string that can decode to 32 bytes
	MaxBase58PubkeyLen = 44
)

// Pubkey is the 32-byte address of an account. It may be an ed25519 public
// key or a program-derived address that lies off the curve.
type Pubkey [PubkeySize]byte

// NewPubkey resolves the boundary Input into a Pubkey
func NewPubkey(in Input) (Pubkey, error) {
	switch v := in.(type) {
	case TextInput:
		return NewPubkeyFromString(string(v))
	case BytesInput:
		return NewPubkeyFromBytes(v)
	default:
		return Pubkey{}, ErrNilInput
	}
}

// NewPubkeyFromBytes returns a Pubkey from exactly 32 raw bytes
func NewPubkeyFromBytes(data []byte) (Pubkey, error) {
	var p Pubkey
	if len(data) != PubkeySize {
		return p, fmt.Errorf(
			"%w: pubkey: expected %d bytes, got %d",
			ErrInvalidLength,
			PubkeySize,
			len(data),
		)
	}
	copy(p[:], data)
	return p, nil
}

// NewPubkeyFromString decodes a base58 Pubkey
func NewPubkeyFromString(s string) (Pubkey, error) {
	if len(s) > MaxBase58PubkeyLen {
		return Pubkey{}, fmt.Errorf(
			"%w: pubkey: base58 string too long (%d characters)",
			ErrInvalidLength,
			len(s),
		)
	}
	decoded, err := decodeBase58(s)
	if err != nil {
		return Pubkey{}, err
	}
	return NewPubkeyFromBytes(decoded)
}

// MustPubkey decodes a base58 Pubkey and panics on failure. It is meant for
// well-known program and sysvar ids.
func MustPubkey(s string) Pubkey {
	p, err := NewPubkeyFromString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid pubkey %q: %s", s, err))
	}
	return p
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the raw bytes
func (p Pubkey) Bytes() []byte {
	ret := make([]byte, PubkeySize)
	copy(ret, p[:])
	return ret
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Compare orders pubkeys by their raw bytes
func (p Pubkey) Compare(other Pubkey) int {
	return bytes.Compare(p[:], other[:])
}

// IsOnCurve reports whether the bytes decode to a point on the ed25519 curve.
// Malformed encodings simply report false.
func (p Pubkey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	tmp, err := NewPubkeyFromString(string(text))
	if err != nil {
		return err
	}
	*p = tmp
	return nil
}

func (p Pubkey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func decodeBase58(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	// base58.Decode returns an empty result for any invalid character
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return nil, fmt.Errorf("%w: invalid base58 string", ErrInvalidEncoding)
	}
	return decoded, nil
}
