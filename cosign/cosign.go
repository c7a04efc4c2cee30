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

// Package cosign defines the envelope used to hand a partially signed
// transaction to the remaining signers out of band
package cosign

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pacanele/solkit/cbor"
	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/transaction"
)

// BundleVersion is the only envelope version understood by this package
const BundleVersion = 1

var ErrUnsupportedVersion = errors.New("cosign: unsupported bundle version")

// Bundle is encoded as the CBOR array [version, transaction bytes, note]
type Bundle struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Version uint
	TxBytes []byte
	Note    string
}

// NewBundle wraps the current wire form of a transaction
func NewBundle(tx *transaction.Transaction, note string) *Bundle {
	return &Bundle{
		Version: BundleVersion,
		TxBytes: tx.ToBytes(),
		Note:    note,
	}
}

func (b *Bundle) UnmarshalCBOR(cborData []byte) error {
	return b.UnmarshalCborGeneric(cborData, b)
}

// Decode parses a bundle and keeps the bytes it was decoded from
func Decode(data []byte) (*Bundle, error) {
	var ret Bundle
	if err := cbor.DecodeExact(data, &ret); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if ret.Version != BundleVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, ret.Version)
	}
	return &ret, nil
}

// Encode returns the CBOR form of the bundle. A decoded bundle returns the
// bytes it was decoded from.
func (b *Bundle) Encode() ([]byte, error) {
	if cborData := b.Cbor(); cborData != nil {
		return cborData, nil
	}
	return cbor.Encode(b)
}

// Id identifies the bundle as the SHA-256 of its CBOR encoding
func (b *Bundle) Id() (common.Hash, error) {
	cborData, err := b.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return common.HashData(cborData), nil
}

// Transaction decodes the carried transaction
func (b *Bundle) Transaction(logger *slog.Logger) (*transaction.Transaction, error) {
	tx, err := transaction.FromBytes(b.TxBytes, transaction.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("bundle transaction: %w", err)
	}
	return tx, nil
}

// Update replaces the carried transaction, typically after adding signatures
func (b *Bundle) Update(tx *transaction.Transaction) {
	b.TxBytes = tx.ToBytes()
	b.SetCbor(nil)
}
