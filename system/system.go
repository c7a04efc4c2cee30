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

// Package system builds instructions for the native system program
package system

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/instruction"
)

var (
	ProgramId                 = common.MustPubkey("11111111111111111111111111111111")
	SysvarRentId              = common.MustPubkey("SysvarRent111111111111111111111111111111111")
	SysvarRecentBlockhashesId = common.MustPubkey("SysvarRecentB1ockHashes11111111111111111111")
	SysvarSlotHashesId        = common.MustPubkey("SysvarS1otHashes111111111111111111111111111")
)

// NonceAccountSize is the size of the data in an initialized nonce account
const NonceAccountSize = 80

var (
	ErrInvalidInstructionData = errors.New("system: invalid instruction data")
	ErrUnexpectedInstruction  = errors.New("system: unexpected instruction type")
)

// InstructionType is the u32 discriminant that starts every system instruction
type InstructionType uint32

const (
	InstructionCreateAccount InstructionType = iota
	InstructionAssign
	InstructionTransfer
	InstructionCreateAccountWithSeed
	InstructionAdvanceNonceAccount
	InstructionWithdrawNonceAccount
	InstructionInitializeNonceAccount
	InstructionAuthorizeNonceAccount
	InstructionAllocate
	InstructionAllocateWithSeed
	InstructionAssignWithSeed
	InstructionTransferWithSeed
)

var instructionTypeNames = map[InstructionType]string{
	InstructionCreateAccount:          "CreateAccount",
	InstructionAssign:                 "Assign",
	InstructionTransfer:               "Transfer",
	InstructionCreateAccountWithSeed:  "CreateAccountWithSeed",
	InstructionAdvanceNonceAccount:    "AdvanceNonceAccount",
	InstructionWithdrawNonceAccount:   "WithdrawNonceAccount",
	InstructionInitializeNonceAccount: "InitializeNonceAccount",
	InstructionAuthorizeNonceAccount:  "AuthorizeNonceAccount",
	InstructionAllocate:               "Allocate",
	InstructionAllocateWithSeed:       "AllocateWithSeed",
	InstructionAssignWithSeed:         "AssignWithSeed",
	InstructionTransferWithSeed:       "TransferWithSeed",
}

func (t InstructionType) String() string {
	if name, ok := instructionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("InstructionType(%d)", uint32(t))
}

// ParseInstructionType returns the discriminant of system instruction data
func ParseInstructionType(data []byte) (InstructionType, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf(
			"%w: %d bytes is too short for a discriminant",
			ErrInvalidInstructionData,
			len(data),
		)
	}
	ret := InstructionType(binary.LittleEndian.Uint32(data))
	if _, ok := instructionTypeNames[ret]; !ok {
		return 0, fmt.Errorf("%w: unknown discriminant %d", ErrInvalidInstructionData, ret)
	}
	return ret, nil
}

// ParseTransfer returns the lamports moved by Transfer instruction data
func ParseTransfer(data []byte) (uint64, error) {
	instrType, err := ParseInstructionType(data)
	if err != nil {
		return 0, err
	}
	if instrType != InstructionTransfer {
		return 0, fmt.Errorf("%w: %s", ErrUnexpectedInstruction, instrType)
	}
	if len(data) != 12 {
		return 0, fmt.Errorf(
			"%w: transfer data is %d bytes, expected 12",
			ErrInvalidInstructionData,
			len(data),
		)
	}
	return binary.LittleEndian.Uint64(data[4:]), nil
}

// encoder writes the bincode layout: fixed-width little-endian integers,
// raw 32-byte keys and strings as a u64 length followed by the bytes
type encoder struct {
	buf []byte
}

func newEncoder(instrType InstructionType) *encoder {
	e := &encoder{buf: make([]byte, 0, 64)}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(instrType))
	return e
}

func (e *encoder) u64(v uint64) *encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *encoder) pubkey(p common.Pubkey) *encoder {
	e.buf = append(e.buf, p[:]...)
	return e
}

func (e *encoder) str(s string) *encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(len(s)))
	e.buf = append(e.buf, s...)
	return e
}

func (e *encoder) instruction(accounts ...instruction.AccountMeta) instruction.Instruction {
	return instruction.New(ProgramId, e.buf, accounts...)
}
