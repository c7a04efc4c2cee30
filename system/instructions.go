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

package system

import (
	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/instruction"
)

// CreateAccount creates a new account at to, funded by from and owned by owner
func CreateAccount(
	from common.Pubkey,
	to common.Pubkey,
	lamports uint64,
	space uint64,
	owner common.Pubkey,
) instruction.Instruction {
	return newEncoder(InstructionCreateAccount).
		u64(lamports).
		u64(space).
		pubkey(owner).
		instruction(
			instruction.NewAccountMeta(from, true),
			instruction.NewAccountMeta(to, true),
		)
}

// CreateAccountWithSeed creates an account at the address derived from base,
// seed and owner. The base must sign; it is listed separately when it is not the funder.
func CreateAccountWithSeed(
	from common.Pubkey,
	to common.Pubkey,
	base common.Pubkey,
	seed string,
	lamports uint64,
	space uint64,
	owner common.Pubkey,
) instruction.Instruction {
	accounts := []instruction.AccountMeta{
		instruction.NewAccountMeta(from, true),
		instruction.NewAccountMeta(to, false),
	}
	if base != from {
		accounts = append(accounts, instruction.NewReadonlyAccountMeta(base, true))
	}
	return newEncoder(InstructionCreateAccountWithSeed).
		pubkey(base).
		str(seed).
		u64(lamports).
		u64(space).
		pubkey(owner).
		instruction(accounts...)
}

// Assign changes the owner of an account
func Assign(account common.Pubkey, owner common.Pubkey) instruction.Instruction {
	return newEncoder(InstructionAssign).
		pubkey(owner).
		instruction(instruction.NewAccountMeta(account, true))
}

// AssignWithSeed changes the owner of a seed-derived account
func AssignWithSeed(
	account common.Pubkey,
	base common.Pubkey,
	seed string,
	owner common.Pubkey,
) instruction.Instruction {
	return newEncoder(InstructionAssignWithSeed).
		pubkey(base).
		str(seed).
		pubkey(owner).
		instruction(
			instruction.NewAccountMeta(account, false),
			instruction.NewReadonlyAccountMeta(base, true),
		)
}

// Transfer moves lamports between two system-owned accounts
func Transfer(from common.Pubkey, to common.Pubkey, lamports uint64) instruction.Instruction {
	return newEncoder(InstructionTransfer).
		u64(lamports).
		instruction(
			instruction.NewAccountMeta(from, true),
			instruction.NewAccountMeta(to, false),
		)
}

// TransferWithSeed moves lamports out of a seed-derived account
func TransferWithSeed(
	from common.Pubkey,
	fromBase common.Pubkey,
	fromSeed string,
	fromOwner common.Pubkey,
	to common.Pubkey,
	lamports uint64,
) instruction.Instruction {
	return newEncoder(InstructionTransferWithSeed).
		u64(lamports).
		str(fromSeed).
		pubkey(fromOwner).
		instruction(
			instruction.NewAccountMeta(from, false),
			instruction.NewReadonlyAccountMeta(fromBase, true),
			instruction.NewAccountMeta(to, false),
		)
}

// Allocate sets the data size of an account
func Allocate(account common.Pubkey, space uint64) instruction.Instruction {
	return newEncoder(InstructionAllocate).
		u64(space).
		instruction(instruction.NewAccountMeta(account, true))
}

// AllocateWithSeed sets the data size and owner of a seed-derived account
func AllocateWithSeed(
	account common.Pubkey,
	base common.Pubkey,
	seed string,
	space uint64,
	owner common.Pubkey,
) instruction.Instruction {
	return newEncoder(InstructionAllocateWithSeed).
		pubkey(base).
		str(seed).
		u64(space).
		pubkey(owner).
		instruction(
			instruction.NewAccountMeta(account, false),
			instruction.NewReadonlyAccountMeta(base, true),
		)
}

// CreateNonceAccount returns the two instructions that create and
// initialize a durable nonce account
func CreateNonceAccount(
	from common.Pubkey,
	nonce common.Pubkey,
	authority common.Pubkey,
	lamports uint64,
) []instruction.Instruction {
	return []instruction.Instruction{
		CreateAccount(from, nonce, lamports, NonceAccountSize, ProgramId),
		initializeNonceAccount(nonce, authority),
	}
}

func initializeNonceAccount(nonce common.Pubkey, authority common.Pubkey) instruction.Instruction {
	return newEncoder(InstructionInitializeNonceAccount).
		pubkey(authority).
		instruction(
			instruction.NewAccountMeta(nonce, false),
			instruction.NewReadonlyAccountMeta(SysvarRecentBlockhashesId, false),
			instruction.NewReadonlyAccountMeta(SysvarRentId, false),
		)
}

// AdvanceNonceAccount consumes the stored nonce. It must be the first
// instruction of a transaction that uses the nonce as its blockhash.
func AdvanceNonceAccount(nonce common.Pubkey, authority common.Pubkey) instruction.Instruction {
	return newEncoder(InstructionAdvanceNonceAccount).
		instruction(
			instruction.NewAccountMeta(nonce, false),
			instruction.NewReadonlyAccountMeta(SysvarRecentBlockhashesId, false),
			instruction.NewReadonlyAccountMeta(authority, true),
		)
}

// WithdrawNonceAccount moves lamports out of a nonce account
func WithdrawNonceAccount(
	nonce common.Pubkey,
	authority common.Pubkey,
	to common.Pubkey,
	lamports uint64,
) instruction.Instruction {
	return newEncoder(InstructionWithdrawNonceAccount).
		u64(lamports).
		instruction(
			instruction.NewAccountMeta(nonce, false),
			instruction.NewAccountMeta(to, false),
			instruction.NewReadonlyAccountMeta(SysvarRecentBlockhashesId, false),
			instruction.NewReadonlyAccountMeta(SysvarRentId, false),
			instruction.NewReadonlyAccountMeta(authority, true),
		)
}

// AuthorizeNonceAccount hands the nonce authority to newAuthority
func AuthorizeNonceAccount(
	nonce common.Pubkey,
	authority common.Pubkey,
	newAuthority common.Pubkey,
) instruction.Instruction {
	return newEncoder(InstructionAuthorizeNonceAccount).
		pubkey(newAuthority).
		instruction(
			instruction.NewAccountMeta(nonce, false),
			instruction.NewReadonlyAccountMeta(authority, true),
		)
}
