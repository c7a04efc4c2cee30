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

// Package address implements the deterministic address derivations:
// seeded addresses (CreateWithSeed) and program-derived addresses
// (CreateProgramAddress, FindProgramAddress).
//
// A program-derived address is the SHA-256 hash of the seeds, the owning
// program id and the ASCII marker "ProgramDerivedAddress". Results that land
// on the ed25519 curve are rejected so that no private key can exist for them.
// All functions are pure and safe for concurrent use.
package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pacanele/solkit/common"
)

const (
	// MaxSeedLen is the maximum length in bytes of a single seed
	MaxSeedLen = 32

	// MaxSeeds is the maximum number of seeds, including the bump seed
	MaxSeeds = 16

	// PDAMarker is appended to every program address derivation
	PDAMarker = "ProgramDerivedAddress"
)

var (
	ErrInvalidSeedLength     = errors.New("seed is too long for address derivation")
	ErrMaxSeedLengthExceeded = errors.New("length of the seed is too long for address generation")
	ErrAddressOnCurve        = errors.New("derived address lies on the ed25519 curve")
	ErrNoValidAddressFound   = errors.New("unable to find a viable program address bump seed")
	ErrIllegalOwner          = errors.New("provided owner is not allowed")
)

// CreateWithSeed derives an address from a base address, a UTF-8 seed and
// the owning program: sha256(base || seed || owner).
func CreateWithSeed(
	base common.Pubkey,
	seed string,
	owner common.Pubkey,
) (common.Pubkey, error) {
	if len(seed) > MaxSeedLen {
		return common.Pubkey{}, fmt.Errorf(
			"%w: %d bytes exceeds maximum of %d",
			ErrInvalidSeedLength,
			len(seed),
			MaxSeedLen,
		)
	}
	// An owner ending in the PDA marker could be used to forge program addresses
	if bytes.HasSuffix(owner[:], []byte(PDAMarker)) {
		return common.Pubkey{}, ErrIllegalOwner
	}
	return common.Pubkey(
		common.HashData(base[:], []byte(seed), owner[:]),
	), nil
}

// CreateProgramAddress derives a program address from the seeds and program id.
// It fails with ErrAddressOnCurve when the result is a valid ed25519 point.
func CreateProgramAddress(
	seeds [][]byte,
	programId common.Pubkey,
) (common.Pubkey, error) {
	if err := checkSeeds(seeds, MaxSeeds); err != nil {
		return common.Pubkey{}, err
	}
	parts := make([][]byte, 0, len(seeds)+2)
	parts = append(parts, seeds...)
	parts = append(parts, programId[:], []byte(PDAMarker))
	ret := common.Pubkey(common.HashData(parts...))
	if ret.IsOnCurve() {
		return common.Pubkey{}, ErrAddressOnCurve
	}
	return ret, nil
}

// FindProgramAddress searches bump seeds from 255 down to 0 and returns the
// first program address that lies off the curve along with its bump.
func FindProgramAddress(
	seeds [][]byte,
	programId common.Pubkey,
) (common.Pubkey, uint8, error) {
	// Leave room for the bump seed
	if err := checkSeeds(seeds, MaxSeeds-1); err != nil {
		return common.Pubkey{}, 0, err
	}
	bumpSeed := []byte{0}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = bumpSeed
	for bump := 255; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)
		addr, err := CreateProgramAddress(withBump, programId)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrAddressOnCurve) {
			return common.Pubkey{}, 0, err
		}
	}
	return common.Pubkey{}, 0, ErrNoValidAddressFound
}

// MustFindProgramAddress is like FindProgramAddress but panics on failure.
// It is intended for package-level variables holding well-known addresses.
func MustFindProgramAddress(
	seeds [][]byte,
	programId common.Pubkey,
) (common.Pubkey, uint8) {
	addr, bump, err := FindProgramAddress(seeds, programId)
	if err != nil {
		panic(fmt.Sprintf("unexpected error finding program address: %s", err))
	}
	return addr, bump
}

func checkSeeds(seeds [][]byte, maxSeeds int) error {
	if len(seeds) > maxSeeds {
		return fmt.Errorf(
			"%w: %d seeds exceeds maximum of %d",
			ErrMaxSeedLengthExceeded,
			len(seeds),
			maxSeeds,
		)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return fmt.Errorf(
				"%w: seed %d is %d bytes",
				ErrMaxSeedLengthExceeded,
				i,
				len(seed),
			)
		}
	}
	return nil
}
