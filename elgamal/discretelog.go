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

package elgamal

import (
	"sync"

	"github.com/gtank/ristretto255"
)

const (
	// MaxDecryptableBits bounds the amounts Decrypt can recover
	MaxDecryptableBits = 32

	babyStepCount = 1 << (MaxDecryptableBits / 2)
)

type encodedPoint [32]byte

var (
	babySteps     map[encodedPoint]uint32
	babyStepsOnce sync.Once
	// giantStep is babyStepCount·G
	giantStep *ristretto255.Element
)

func encodePoint(e *ristretto255.Element) encodedPoint {
	var ret encodedPoint
	e.Encode(ret[:0])
	return ret
}

// buildBabySteps tabulates j·G for j in [0, babyStepCount)
func buildBabySteps() {
	babySteps = make(map[encodedPoint]uint32, babyStepCount)
	point := ristretto255.NewElement().Zero()
	base := ristretto255.NewElement().Base()
	for j := range uint32(babyStepCount) {
		babySteps[encodePoint(point)] = j
		point.Add(point, base)
	}
	giantStep = point
}

// solveDiscreteLog finds a < 2^32 with a·G == target using baby-step
// giant-step. The table is built on first use.
func solveDiscreteLog(target *ristretto255.Element) (uint64, bool) {
	babyStepsOnce.Do(buildBabySteps)
	point := ristretto255.NewElement().Add(target, ristretto255.NewElement().Zero())
	for i := range uint64(babyStepCount) {
		if j, ok := babySteps[encodePoint(point)]; ok {
			return i*babyStepCount + uint64(j), true
		}
		point.Subtract(point, giantStep)
	}
	return 0, false
}
