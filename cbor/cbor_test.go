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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/pacanele/solkit/cbor"
	"github.com/stretchr/testify/require"
)

type encodeTestDefinition struct {
	CborHex string
	Object  any
}

var encodeTests = []encodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{1, 2, 3},
	},
	// Map keys are sorted
	{
		CborHex: "a2616101616202",
		Object:  map[string]int{"b": 2, "a": 1},
	},
}

func TestEncode(t *testing.T) {
	for _, test := range encodeTests {
		cborData, err := cbor.Encode(test.Object)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != test.CborHex {
			t.Fatalf(
				"object did not encode to expected CBOR\n  got: %s\n  wanted: %s",
				cborHex,
				test.CborHex,
			)
		}
	}
}

type testStoredRecord struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Id    uint
	Label string
}

func (r *testStoredRecord) UnmarshalCBOR(data []byte) error {
	return r.UnmarshalCborGeneric(data, r)
}

func TestDecodeStoreCbor(t *testing.T) {
	// [7, "abc"]
	cborData, err := hex.DecodeString("820763616263")
	require.NoError(t, err)
	var rec testStoredRecord
	_, err = cbor.Decode(cborData, &rec)
	require.NoError(t, err, "decode failed")
	require.Equal(t, uint(7), rec.Id)
	require.Equal(t, "abc", rec.Label)
	require.Equal(t, cborData, rec.Cbor(), "original CBOR not stored")
	// Re-encoding a struct-as-array gives back the same bytes
	encoded, err := cbor.Encode(&rec)
	require.NoError(t, err, "encode failed")
	require.Equal(t, cborData, encoded)
}

func TestDecodeExactTrailingData(t *testing.T) {
	var out []int
	err := cbor.DecodeExact([]byte{0x81, 0x01, 0x00}, &out)
	require.Error(t, err, "expected trailing data error")
	err = cbor.DecodeExact([]byte{0x81, 0x01}, &out)
	require.NoError(t, err)
	require.Equal(t, []int{1}, out)
}

func TestDump(t *testing.T) {
	// [1, h'0102', "x"]
	out, err := cbor.Dump([]byte{0x83, 0x01, 0x42, 0x01, 0x02, 0x61, 0x78})
	require.NoError(t, err)
	require.Equal(t, "[\n  0x1,\n  h'0102',\n  \"x\",\n],\n", out)
	_, err = cbor.Dump([]byte{0x83, 0x01})
	require.Error(t, err)
}
