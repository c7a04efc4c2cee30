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

package keypair

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pacanele/solkit/common"
)

// Keyfiles hold the serialized keypair as a JSON array of 64 byte values,
// e.g. [12,201,...]. This is the format written by the reference keygen tool.

// ReadFile loads a keypair from a JSON keyfile
func ReadFile(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer clear(data)
	return UnmarshalJSONKey(data)
}

// WriteFile stores the keypair as a JSON keyfile readable only by the owner
func WriteFile(path string, k *Keypair) error {
	data, err := MarshalJSONKey(k)
	if err != nil {
		return err
	}
	defer clear(data)
	return os.WriteFile(path, data, 0o600)
}

// MarshalJSONKey encodes the keypair as a JSON array of byte values
func MarshalJSONKey(k *Keypair) ([]byte, error) {
	if k.IsZeroized() {
		return nil, ErrZeroized
	}
	raw := k.ToBytes()
	defer clear(raw)
	values := make([]int, len(raw))
	defer clear(values)
	for i, b := range raw {
		values[i] = int(b)
	}
	return json.Marshal(values)
}

// UnmarshalJSONKey decodes a JSON array of byte values into a keypair
func UnmarshalJSONKey(data []byte) (*Keypair, error) {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: keyfile: %w", common.ErrInvalidEncoding, err)
	}
	defer clear(values)
	raw := make([]byte, len(values))
	defer clear(raw)
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf(
				"%w: keyfile: value %d at index %d is not a byte",
				common.ErrInvalidEncoding,
				v,
				i,
			)
		}
		raw[i] = byte(v)
	}
	return FromBytes(raw)
}
