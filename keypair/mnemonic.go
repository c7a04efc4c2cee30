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
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size used for new mnemonics (12 words)
const MnemonicEntropyBits = 128

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewMnemonic returns a new random BIP-39 mnemonic
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)
	return bip39.NewMnemonic(entropy)
}

// FromMnemonic derives a keypair from a BIP-39 mnemonic and optional
// passphrase. The first 32 bytes of the BIP-39 seed are used as the ed25519
// secret seed, with no further derivation path.
func FromMnemonic(mnemonic string, passphrase string) (*Keypair, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	defer clear(seed)
	return FromSeed(seed[:SeedSize])
}
