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
	"errors"
)

var (
	// ErrInvalidLength is returned when decoded input does not have the exact size of the target type
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidEncoding is returned when text input is not valid base58/base64
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrNilInput is returned when a constructor receives no input
	ErrNilInput = errors.New("no input provided")
	// ErrSignatureVerification is returned when an ed25519 signature does not verify
	ErrSignatureVerification = errors.New("signature verification failed")
)
