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

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/elgamal"
)

func (c *cli) elgamalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elgamal",
		Short: "Confidential transfer encryption keys",
	}
	var (
		keyfile    string
		publicSeed string
	)
	keygen := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ElGamal keypair and print its public key",
		Long: "Generate an ElGamal keypair. With --signer the key is derived " +
			"from the signing keypair and --seed, and can be recreated at any time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				kp  *elgamal.Keypair
				err error
			)
			if cmd.Flags().Changed("signer") {
				signer, err := c.loadSigner(keyfile, "")
				if err != nil {
					return err
				}
				defer signer.Zeroize()
				kp, err = elgamal.KeypairFromSigner(signer, []byte(publicSeed))
				if err != nil {
					return errors.Wrap(err, "derive elgamal keypair")
				}
			} else {
				kp, err = elgamal.NewKeypair()
				if err != nil {
					return errors.Wrap(err, "generate elgamal keypair")
				}
			}
			defer kp.Zeroize()
			fmt.Fprintln(cmd.OutOrStdout(), kp.Pubkey().Compress())
			return nil
		},
	}
	keygen.Flags().StringVar(&keyfile, "signer", "", "derive from this signing keyfile")
	keygen.Flags().StringVar(&publicSeed, "seed", "", "public seed mixed into the derivation")
	cmd.AddCommand(keygen)
	cmd.AddCommand(&cobra.Command{
		Use:   "decompress <base64>",
		Short: "Check that a base64 ElGamal public key is a valid group element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pod, err := elgamal.NewPodPubkey(common.TextInput(args[0]))
			if err != nil {
				return errors.Wrap(err, "parse elgamal pubkey")
			}
			pubkey, err := pod.Decompress()
			if err != nil {
				return errors.Wrap(err, "decompress")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s\n", pubkey)
			return nil
		},
	})
	return cmd
}
