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

package cosign_test

import (
	"bytes"
	"testing"

	"github.com/pacanele/solkit/cbor"
	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/cosign"
	"github.com/pacanele/solkit/instruction"
	"github.com/pacanele/solkit/internal/test"
	"github.com/pacanele/solkit/keypair"
	"github.com/pacanele/solkit/system"
	"github.com/pacanele/solkit/transaction"
	"github.com/stretchr/testify/require"
)

func newKeypair(t *testing.T, fill byte) *keypair.Keypair {
	t.Helper()
	kp, err := keypair.FromSeed(bytes.Repeat([]byte{fill}, keypair.SeedSize))
	require.NoError(t, err)
	return kp
}

func TestCoSignFlow(t *testing.T) {
	payer := newKeypair(t, 1)
	cosigner := newKeypair(t, 2)
	payerKey := payer.Pubkey()
	instrs := instruction.NewInstructions(
		system.Transfer(payerKey, test.Pubkey("dest"), 10),
		system.Transfer(cosigner.Pubkey(), test.Pubkey("dest"), 20),
	)
	tx, err := transaction.New(instrs, &payerKey)
	require.NoError(t, err)
	blockhash := test.Hash("recent")
	require.NoError(t, tx.PartialSign([]common.Signer{payer}, blockhash))

	bundle := cosign.NewBundle(tx, "please co-sign")
	data, err := bundle.Encode()
	require.NoError(t, err)

	received, err := cosign.Decode(data)
	require.NoError(t, err)
	require.Equal(t, "please co-sign", received.Note)
	require.Equal(t, data, received.Cbor(), "original bytes not kept")
	sentId, err := bundle.Id()
	require.NoError(t, err)
	receivedId, err := received.Id()
	require.NoError(t, err)
	require.Equal(t, sentId, receivedId)

	partial, err := received.Transaction(nil)
	require.NoError(t, err)
	require.Equal(t, transaction.StatusPartiallySigned, partial.Status())
	require.NoError(t, partial.PartialSign([]common.Signer{cosigner}, blockhash))
	received.Update(partial)
	require.Nil(t, received.Cbor())

	updated, err := received.Encode()
	require.NoError(t, err)
	final, err := cosign.Decode(updated)
	require.NoError(t, err)
	finalTx, err := final.Transaction(nil)
	require.NoError(t, err)
	require.NoError(t, finalTx.Verify())
	finalId, err := final.Id()
	require.NoError(t, err)
	require.NotEqual(t, sentId, finalId)
}

func TestDecodeErrors(t *testing.T) {
	wrongVersion, err := cbor.Encode([]any{2, []byte{}, ""})
	require.NoError(t, err)
	_, err = cosign.Decode(wrongVersion)
	require.ErrorIs(t, err, cosign.ErrUnsupportedVersion)
	_, err = cosign.Decode([]byte{0xff})
	require.Error(t, err)
	badTx, err := cbor.Encode([]any{1, []byte{1, 2, 3}, "x"})
	require.NoError(t, err)
	bundle, err := cosign.Decode(badTx)
	require.NoError(t, err)
	_, err = bundle.Transaction(nil)
	require.ErrorIs(t, err, transaction.ErrMalformedTransaction)
}
