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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pacanele/solkit/keypair"
)

func (c *cli) keygenCmd() *cobra.Command {
	var (
		outfile       string
		force         bool
		withMnemonic  bool
		recoverPhrase string
		passphrase    string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new signing keypair and write it to a keyfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outfile == "" {
				outfile = c.config.Keypair
			}
			if !force {
				if _, err := os.Stat(outfile); err == nil {
					return errors.Errorf("%s already exists, use --force to overwrite", outfile)
				}
			}
			var (
				kp  *keypair.Keypair
				err error
			)
			switch {
			case recoverPhrase != "":
				kp, err = keypair.FromMnemonic(recoverPhrase, passphrase)
			case withMnemonic:
				var mnemonic string
				mnemonic, err = keypair.NewMnemonic()
				if err != nil {
					return errors.Wrap(err, "generate mnemonic")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "mnemonic: %s\n", mnemonic)
				kp, err = keypair.FromMnemonic(mnemonic, passphrase)
			default:
				kp, err = keypair.Generate()
			}
			if err != nil {
				return errors.Wrap(err, "create keypair")
			}
			defer kp.Zeroize()
			if err := os.MkdirAll(filepath.Dir(outfile), 0o700); err != nil {
				return errors.Wrap(err, "create keyfile directory")
			}
			if err := keypair.WriteFile(outfile, kp); err != nil {
				return errors.Wrap(err, "write keyfile")
			}
			c.logger.Info("wrote keyfile", zap.String("path", outfile))
			fmt.Fprintf(cmd.OutOrStdout(), "pubkey: %s\n", kp.Pubkey())
			return nil
		},
	}
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "keyfile to write (defaults to the configured keypair)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing keyfile")
	cmd.Flags().BoolVar(&withMnemonic, "mnemonic", false, "derive the keypair from a new BIP-39 mnemonic")
	cmd.Flags().StringVar(&recoverPhrase, "recover", "", "derive the keypair from an existing BIP-39 mnemonic")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "optional BIP-39 passphrase")
	cmd.MarkFlagsMutuallyExclusive("mnemonic", "recover")
	return cmd
}

func (c *cli) pubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey [keyfile]",
		Short: "Print the public key of a keyfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keyfile string
			if len(args) > 0 {
				keyfile = args[0]
			}
			kp, err := c.loadSigner(keyfile, "")
			if err != nil {
				return err
			}
			defer kp.Zeroize()
			fmt.Fprintln(cmd.OutOrStdout(), kp.Pubkey())
			return nil
		},
	}
}
