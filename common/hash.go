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
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	HashSize = 32

	// MaxBase58HashLen is the longest base58 string that can decode to 32 bytes
	MaxBase58HashLen = 44
)

// Hash is a 32-byte SHA-256 digest, used as the recent blockhash of a message
type Hash [HashSize]byte

// NewHash resolves the boundary Input into a Hash
func NewHash(in Input) (Hash, error) {
	switch v := in.(type) {
	case TextInput:
		return NewHashFromString(string(v))
	case BytesInput:
		return NewHashFromBytes(v)
	default:
		return Hash{}, ErrNilInput
	}
}

// NewHashFromBytes returns a Hash from exactly 32 raw bytes
func NewHashFromBytes(data []byte) (Hash, error) {
	var h Hash
	if len(data) != HashSize {
		return h, fmt.Errorf(
			"%w: hash: expected %d bytes, got %d",
			ErrInvalidLength,
			HashSize,
			len(data),
		)
	}
	copy(h[:], data)
	return h, nil
}

// NewHashFromString decodes a base58 Hash
func NewHashFromString(s string) (Hash, error) {
	if len(s) > MaxBase58HashLen {
		return Hash{}, fmt.Errorf(
			"%w: hash: base58 string too long (%d characters)",
			ErrInvalidLength,
			len(s),
		)
	}
	decoded, err := decodeBase58(s)
	if err != nil {
		return Hash{}, err
	}
	return NewHashFromBytes(decoded)
}

// HashData returns the SHA-256 hash of the concatenated parts
func HashData(parts ...[]byte) Hash {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}
	var ret Hash
	h.Sum(ret[:0])
	return ret
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

// Bytes returns a copy of the raw bytes
func (h Hash) Bytes() []byte {
	ret := make([]byte, HashSize)
	copy(ret, h[:])
	return ret
}

func (h Hash) Equals(other Hash) bool {
	return h == other
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	tmp, err := NewHashFromString(string(text))
	if err != nil {
		return err
	}
	*h = tmp
	return nil
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}
