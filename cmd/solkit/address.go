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

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pacanele/solkit/address"
)

func (c *cli) addressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Derive and inspect account addresses",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create-with-seed <base> <seed> <owner>",
		Short: "Derive an address from a base address, seed and owner program",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := parsePubkey(args[0])
			if err != nil {
				return err
			}
			owner, err := parsePubkey(args[2])
			if err != nil {
				return err
			}
			addr, err := address.CreateWithSeed(base, args[1], owner)
			if err != nil {
				return errors.Wrap(err, "create with seed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "find-program-address <program> [seed...]",
		Short: "Find the program-derived address and bump for UTF-8 seeds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			programId, err := parsePubkey(args[0])
			if err != nil {
				return err
			}
			seeds := make([][]byte, 0, len(args)-1)
			for _, seed := range args[1:] {
				seeds = append(seeds, []byte(seed))
			}
			addr, bump, err := address.FindProgramAddress(seeds, programId)
			if err != nil {
				return errors.Wrap(err, "find program address")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", addr, bump)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "is-on-curve <pubkey>",
		Short: "Report whether an address is a valid ed25519 public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pubkey, err := parsePubkey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pubkey.IsOnCurve())
			return nil
		},
	})
	return cmd
}
