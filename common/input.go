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

// Input is the boundary form accepted by the text-or-bytes constructors
// (NewPubkey, NewHash and elgamal.NewPodPubkey). It is either TextInput or
// BytesInput; a fixed-size numeric array is passed as BytesInput(arr[:]).
type Input interface {
	isInput()
}

// TextInput is the textual form of a value (base58 for Pubkey/Hash, base64 for ElGamal pods)
type TextInput string

// BytesInput is the raw byte form of a value
type BytesInput []byte

func (TextInput) isInput()  {}
func (BytesInput) isInput() {}
