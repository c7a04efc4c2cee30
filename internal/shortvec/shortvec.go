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

// Package shortvec implements the compact-u16 length prefix used in the
// message and transaction wire formats: 7 bits per byte, little-endian,
// high bit set on every byte except the last, at most 3 bytes.
package shortvec

import (
	"errors"
	"fmt"
)

const (
	// MaxEncodingLength is the longest encoding of a 16-bit value
	MaxEncodingLength = 3

	// MaxValue is the largest encodable value
	MaxValue = 0xffff
)

var (
	ErrUnexpectedEnd = errors.New("shortvec: unexpected end of input")
	ErrOverflow      = errors.New("shortvec: value overflows u16")
	ErrNonCanonical  = errors.New("shortvec: non-canonical encoding")
)

// Append appends the encoding of n to dst. It panics if n is out of range,
// callers are expected to validate lengths first.
func Append(dst []byte, n int) []byte {
	if n < 0 || n > MaxValue {
		panic(fmt.Sprintf("shortvec: value %d out of range", n))
	}
	for {
		elem := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(dst, elem)
		}
		dst = append(dst, elem|0x80)
	}
}

// Decode decodes a length prefix and returns the value and number of bytes consumed
func Decode(data []byte) (int, int, error) {
	var value int
	for i := range MaxEncodingLength {
		if i >= len(data) {
			return 0, 0, ErrUnexpectedEnd
		}
		elem := data[i]
		// A zero byte after the first one adds nothing and is an alias
		if i > 0 && elem == 0 {
			return 0, 0, ErrNonCanonical
		}
		value |= int(elem&0x7f) << (7 * i)
		if elem&0x80 == 0 {
			if value > MaxValue {
				return 0, 0, ErrOverflow
			}
			return value, i + 1, nil
		}
	}
	return 0, 0, ErrOverflow
}
