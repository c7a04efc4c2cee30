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

package cbor

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

// MaxNestedLevels bounds decoder recursion. Exchange formats in this module
// are shallow, so anything deeper is rejected early.
const MaxNestedLevels = 16

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			MaxNestedLevels:   MaxNestedLevels,
			DupMapKey:         _cbor.DupMapKeyEnforcedAPF,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the provided CBOR into dest and returns the number of bytes read
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeExact behaves like Decode but fails if the input has trailing data
func DecodeExact(dataBytes []byte, dest any) error {
	n, err := Decode(dataBytes, dest)
	if err != nil {
		return err
	}
	if n != len(dataBytes) {
		return fmt.Errorf(
			"unexpected trailing data: decoded %d of %d bytes",
			n,
			len(dataBytes),
		)
	}
	return nil
}
