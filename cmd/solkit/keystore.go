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
)

func (c *cli) keystoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore",
		Short: "Manage named keypairs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> [keyfile]",
		Short: "Import a keyfile into the keystore",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keyfile string
			if len(args) > 1 {
				keyfile = args[1]
			}
			kp, err := c.loadSigner(keyfile, "")
			if err != nil {
				return err
			}
			defer kp.Zeroize()
			ks, err := c.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()
			if err := ks.Put(args[0], kp); err != nil {
				return errors.Wrap(err, "store keypair")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], kp.Pubkey())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored keypairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := c.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()
			entries, err := ks.List()
			if err != nil {
				return errors.Wrap(err, "list keystore")
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", entry.Name, entry.Pubkey)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored keypair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := c.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()
			if err := ks.Delete(args[0]); err != nil {
				return errors.Wrap(err, "remove keypair")
			}
			return nil
		},
	})
	return cmd
}
