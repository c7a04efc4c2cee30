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

package system_test

import (
	"encoding/binary"
	"testing"

	"github.com/pacanele/solkit/address"
	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/instruction"
	"github.com/pacanele/solkit/internal/test"
	"github.com/pacanele/solkit/system"
	"github.com/pacanele/solkit/transaction"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	from := test.Pubkey("from")
	to := test.Pubkey("to")
	instr := system.Transfer(from, to, 1)
	require.Equal(t, system.ProgramId, instr.ProgramId)
	require.Equal(t, test.DecodeHexString("020000000100000000000000"), instr.Data)
	require.Equal(
		t,
		[]instruction.AccountMeta{
			{Pubkey: from, IsSigner: true, IsWritable: true},
			{Pubkey: to, IsSigner: false, IsWritable: true},
		},
		instr.Accounts,
	)
	lamports, err := system.ParseTransfer(instr.Data)
	require.NoError(t, err)
	require.Equal(t, uint64(1), lamports)
}

func TestCreateAccountLayout(t *testing.T) {
	owner := test.Pubkey("owner")
	instr := system.CreateAccount(test.Pubkey("from"), test.Pubkey("to"), 1000, 165, owner)
	require.Len(t, instr.Data, 52)
	require.Equal(t, uint32(0), binary.LittleEndian.Uint32(instr.Data))
	require.Equal(t, uint64(1000), binary.LittleEndian.Uint64(instr.Data[4:]))
	require.Equal(t, uint64(165), binary.LittleEndian.Uint64(instr.Data[12:]))
	require.Equal(t, owner[:], instr.Data[20:])
	require.True(t, instr.Accounts[1].IsSigner)
}

func TestCreateAccountWithSeed(t *testing.T) {
	from := test.Pubkey("from")
	owner := test.Pubkey("owner")
	seed := "vault"
	to, err := address.CreateWithSeed(from, seed, owner)
	require.NoError(t, err)
	instr := system.CreateAccountWithSeed(from, to, from, seed, 5, 0, owner)
	require.Len(t, instr.Data, 4+32+8+len(seed)+8+8+32)
	require.Equal(t, uint64(len(seed)), binary.LittleEndian.Uint64(instr.Data[36:]))
	require.Equal(t, seed, string(instr.Data[44:44+len(seed)]))
	// base is the funder so it is not listed twice
	require.Len(t, instr.Accounts, 2)
	other := system.CreateAccountWithSeed(from, to, test.Pubkey("base"), seed, 5, 0, owner)
	require.Len(t, other.Accounts, 3)
	require.True(t, other.Accounts[2].IsSigner)
	require.False(t, other.Accounts[2].IsWritable)
}

func TestInstructionTypes(t *testing.T) {
	a := test.Pubkey("a")
	b := test.Pubkey("b")
	testDefs := []struct {
		instr    instruction.Instruction
		expected system.InstructionType
	}{
		{system.Assign(a, b), system.InstructionAssign},
		{system.AssignWithSeed(a, b, "s", b), system.InstructionAssignWithSeed},
		{system.Allocate(a, 10), system.InstructionAllocate},
		{system.AllocateWithSeed(a, b, "s", 10, b), system.InstructionAllocateWithSeed},
		{system.TransferWithSeed(a, b, "s", b, a, 1), system.InstructionTransferWithSeed},
		{system.AdvanceNonceAccount(a, b), system.InstructionAdvanceNonceAccount},
		{system.WithdrawNonceAccount(a, b, a, 1), system.InstructionWithdrawNonceAccount},
		{system.AuthorizeNonceAccount(a, b, a), system.InstructionAuthorizeNonceAccount},
	}
	for _, testDef := range testDefs {
		got, err := system.ParseInstructionType(testDef.instr.Data)
		require.NoError(t, err)
		require.Equal(t, testDef.expected, got, "unexpected type for %s", testDef.expected)
	}
	_, err := system.ParseInstructionType([]byte{1, 2})
	require.ErrorIs(t, err, system.ErrInvalidInstructionData)
	_, err = system.ParseInstructionType([]byte{99, 0, 0, 0})
	require.ErrorIs(t, err, system.ErrInvalidInstructionData)
	_, err = system.ParseTransfer(system.Allocate(a, 1).Data)
	require.ErrorIs(t, err, system.ErrUnexpectedInstruction)
	require.Equal(t, "WithdrawNonceAccount", system.InstructionWithdrawNonceAccount.String())
}

func TestCreateNonceAccountTransaction(t *testing.T) {
	payer := test.Pubkey("payer")
	nonce := test.Pubkey("nonce")
	instrs := system.CreateNonceAccount(payer, nonce, payer, 1_500_000)
	require.Len(t, instrs, 2)
	require.Equal(
		t,
		uint64(system.NonceAccountSize),
		binary.LittleEndian.Uint64(instrs[0].Data[12:]),
	)
	msg, err := transaction.CompileMessage(instrs, &payer, common.Hash{})
	require.NoError(t, err)
	require.Equal(t, []common.Pubkey{payer, nonce}, msg.SignerKeys())
	// sysvars and the program id are read-only
	require.Equal(t, uint8(3), msg.Header.NumReadonlyUnsignedAccounts)
}
