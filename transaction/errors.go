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

package transaction

import (
	"errors"
	"fmt"

	"github.com/pacanele/solkit/common"
)

var (
	ErrMalformedMessage     = errors.New("malformed message")
	ErrMalformedTransaction = errors.New("malformed transaction")
	ErrTooManyAccounts      = errors.New("too many accounts for a single message")
	ErrUnknownSigner        = errors.New("keypair is not a required signer")
	ErrMissingSignature     = errors.New("missing signature")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrNotEnoughSigners     = errors.New("not enough signers")
)

// UnknownSignerError indicates an attempt to sign with a key that is not one of the message's signers
type UnknownSignerError struct {
	Signer common.Pubkey
}

func (e UnknownSignerError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownSigner, e.Signer)
}

func (UnknownSignerError) Is(target error) bool {
	return target == ErrUnknownSigner
}

// MissingSignatureError indicates an empty signature slot
type MissingSignatureError struct {
	Index  int
	Signer common.Pubkey
}

func (e MissingSignatureError) Error() string {
	return fmt.Sprintf(
		"%s: slot %d for signer %s is empty",
		ErrMissingSignature,
		e.Index,
		e.Signer,
	)
}

func (MissingSignatureError) Is(target error) bool {
	return target == ErrMissingSignature
}

// InvalidSignatureError indicates a signature that does not verify against its signer
type InvalidSignatureError struct {
	Index  int
	Signer common.Pubkey
}

func (e InvalidSignatureError) Error() string {
	return fmt.Sprintf(
		"%s: slot %d does not verify for signer %s",
		ErrInvalidSignature,
		e.Index,
		e.Signer,
	)
}

func (InvalidSignatureError) Is(target error) bool {
	return target == ErrInvalidSignature
}
