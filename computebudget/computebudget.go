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

// Package computebudget builds instructions that set the compute limits and
// priority fee of a transaction
package computebudget

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/instruction"
)

var ProgramId = common.MustPubkey("ComputeBudget111111111111111111111111111111")

const (
	// MaxComputeUnitLimit is the largest limit the runtime accepts
	MaxComputeUnitLimit = 1_400_000

	// MinHeapFrameBytes and MaxHeapFrameBytes bound RequestHeapFrame
	MinHeapFrameBytes = 32 * 1024
	MaxHeapFrameBytes = 256 * 1024

	// heapFrameGranularity is the required multiple for heap frame sizes
	heapFrameGranularity = 1024
)

const (
	discriminantRequestHeapFrame    byte = 1
	discriminantSetComputeUnitLimit byte = 2
	discriminantSetComputeUnitPrice byte = 3
)

var ErrInvalidHeapFrame = errors.New("computebudget: invalid heap frame size")

// RequestHeapFrame requests a larger heap for every program in the transaction
func RequestHeapFrame(bytes uint32) (instruction.Instruction, error) {
	if bytes < MinHeapFrameBytes || bytes > MaxHeapFrameBytes ||
		bytes%heapFrameGranularity != 0 {
		return instruction.Instruction{}, fmt.Errorf(
			"%w: %d is not a multiple of %d between %d and %d",
			ErrInvalidHeapFrame,
			bytes,
			heapFrameGranularity,
			MinHeapFrameBytes,
			MaxHeapFrameBytes,
		)
	}
	data := binary.LittleEndian.AppendUint32(
		[]byte{discriminantRequestHeapFrame},
		bytes,
	)
	return instruction.New(ProgramId, data), nil
}

// SetComputeUnitLimit caps the compute units the transaction may consume
func SetComputeUnitLimit(units uint32) instruction.Instruction {
	data := binary.LittleEndian.AppendUint32(
		[]byte{discriminantSetComputeUnitLimit},
		units,
	)
	return instruction.New(ProgramId, data)
}

// SetComputeUnitPrice sets the priority fee in micro-lamports per compute unit
func SetComputeUnitPrice(microLamports uint64) instruction.Instruction {
	data := binary.LittleEndian.AppendUint64(
		[]byte{discriminantSetComputeUnitPrice},
		microLamports,
	)
	return instruction.New(ProgramId, data)
}
