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

// Package test provides small helpers shared by the test suites
package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pacanele/solkit/common"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Pubkey returns a deterministic address derived from a label. The result
// may or may not lie on the curve.
func Pubkey(label string) common.Pubkey {
	return common.Pubkey(common.HashData([]byte(label)))
}

// Hash returns a deterministic recent blockhash derived from a label
func Hash(label string) common.Hash {
	return common.HashData([]byte("blockhash:" + label))
}
