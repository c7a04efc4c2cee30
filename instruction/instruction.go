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

// Package instruction defines the instruction records that make up a
// transaction and the ordered collection they are gathered in.
package instruction

import (
	"slices"

	"github.com/pacanele/solkit/common"
)

// AccountMeta references an account used by an instruction
type AccountMeta struct {
	Pubkey     common.Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta returns a writable account reference
func NewAccountMeta(pubkey common.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{
		Pubkey:     pubkey,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta returns a read-only account reference
func NewReadonlyAccountMeta(pubkey common.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{
		Pubkey:   pubkey,
		IsSigner: isSigner,
	}
}

// Instruction is a call into a program. Treat it as immutable once built.
type Instruction struct {
	ProgramId common.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// New builds an instruction, copying the provided data and accounts
func New(
	programId common.Pubkey,
	data []byte,
	accounts ...AccountMeta,
) Instruction {
	return Instruction{
		ProgramId: programId,
		Accounts:  slices.Clone(accounts),
		Data:      slices.Clone(data),
	}
}

// Instructions is an ordered list of instructions destined for a single
// transaction. Order is execution order. Entries are never deduplicated.
type Instructions struct {
	list []Instruction
}

// NewInstructions returns a list holding the provided instructions
func NewInstructions(instructions ...Instruction) *Instructions {
	ret := &Instructions{}
	for _, instr := range instructions {
		ret.Push(instr)
	}
	return ret
}

// Push appends an instruction
func (i *Instructions) Push(instruction Instruction) {
	i.list = append(i.list, instruction)
}

// Len returns the number of instructions
func (i *Instructions) Len() int {
	if i == nil {
		return 0
	}
	return len(i.list)
}

// All returns the instructions in insertion order
func (i *Instructions) All() []Instruction {
	if i == nil {
		return nil
	}
	return slices.Clone(i.list)
}
