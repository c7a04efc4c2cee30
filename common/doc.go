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

// Package common contains the fixed-size value types shared by every other
// package: account addresses (Pubkey), recency anchors (Hash) and ed25519
// signatures, along with their text encodings.
//
// Pubkey and Hash are both 32 bytes but are distinct types so one cannot be
// passed where the other is expected.
package common
