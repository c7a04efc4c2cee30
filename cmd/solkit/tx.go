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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pacanele/solkit/cbor"
	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/computebudget"
	"github.com/pacanele/solkit/cosign"
	"github.com/pacanele/solkit/instruction"
	"github.com/pacanele/solkit/system"
	"github.com/pacanele/solkit/transaction"
)

func (c *cli) txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Build, co-sign and verify transactions",
	}
	cmd.AddCommand(c.txTransferCmd())
	cmd.AddCommand(c.txSignCmd())
	cmd.AddCommand(c.txInspectCmd())
	cmd.AddCommand(c.txVerifyCmd())
	return cmd
}

func readBundle(path string) (*cosign.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read bundle")
	}
	bundle, err := cosign.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode bundle %s", path)
	}
	return bundle, nil
}

func writeBundle(path string, bundle *cosign.Bundle) error {
	data, err := bundle.Encode()
	if err != nil {
		return errors.Wrap(err, "encode bundle")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write bundle")
	}
	return nil
}

func (c *cli) txTransferCmd() *cobra.Command {
	var (
		fromKeyfile string
		fromName    string
		to          string
		feePayer    string
		lamports    uint64
		blockhash   string
		cuLimit     uint32
		cuPrice     uint64
		note        string
		out         string
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Build and sign a lamport transfer, writing a co-sign bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := c.loadSigner(fromKeyfile, fromName)
			if err != nil {
				return err
			}
			defer from.Zeroize()
			toKey, err := parsePubkey(to)
			if err != nil {
				return err
			}
			recent, err := common.NewHash(common.TextInput(blockhash))
			if err != nil {
				return errors.Wrap(err, "invalid blockhash")
			}
			payer := from.Pubkey()
			if feePayer != "" {
				if payer, err = parsePubkey(feePayer); err != nil {
					return err
				}
			}
			instrs := instruction.NewInstructions()
			if cuLimit > 0 {
				instrs.Push(computebudget.SetComputeUnitLimit(cuLimit))
			}
			if cuPrice > 0 {
				instrs.Push(computebudget.SetComputeUnitPrice(cuPrice))
			}
			instrs.Push(system.Transfer(from.Pubkey(), toKey, lamports))
			tx, err := transaction.New(instrs, &payer, transaction.WithLogger(c.slogger))
			if err != nil {
				return errors.Wrap(err, "build transaction")
			}
			if err := tx.PartialSign([]common.Signer{from}, recent); err != nil {
				return errors.Wrap(err, "sign transaction")
			}
			bundle := cosign.NewBundle(tx, note)
			if err := writeBundle(out, bundle); err != nil {
				return err
			}
			c.logger.Info(
				"wrote bundle",
				zap.String("path", out),
				zap.Stringer("status", tx.Status()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tx.Status(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&fromKeyfile, "from", "", "keyfile of the sender (defaults to the configured keypair)")
	cmd.Flags().StringVar(&fromName, "from-keystore", "", "keystore name of the sender")
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&feePayer, "fee-payer", "", "fee payer address when it is not the sender")
	cmd.Flags().Uint64Var(&lamports, "lamports", 0, "amount to transfer")
	cmd.Flags().StringVar(&blockhash, "blockhash", "", "recent blockhash (base58)")
	cmd.Flags().Uint32Var(&cuLimit, "cu-limit", 0, "compute unit limit")
	cmd.Flags().Uint64Var(&cuPrice, "cu-price", 0, "compute unit price in micro-lamports")
	cmd.Flags().StringVar(&note, "note", "", "note for the co-signers")
	cmd.Flags().StringVar(&out, "out", "bundle.cbor", "bundle file to write")
	cmd.MarkFlagsMutuallyExclusive("from", "from-keystore")
	for _, name := range []string{"to", "lamports", "blockhash"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (c *cli) txSignCmd() *cobra.Command {
	var (
		keyfile string
		name    string
	)
	cmd := &cobra.Command{
		Use:   "sign <bundle>",
		Short: "Add a signature to a co-sign bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := readBundle(args[0])
			if err != nil {
				return err
			}
			tx, err := bundle.Transaction(c.slogger)
			if err != nil {
				return err
			}
			signer, err := c.loadSigner(keyfile, name)
			if err != nil {
				return err
			}
			defer signer.Zeroize()
			// Keep the blockhash the other signers used
			recent := tx.Message().RecentBlockhash
			if err := tx.PartialSign([]common.Signer{signer}, recent); err != nil {
				return errors.Wrap(err, "sign transaction")
			}
			bundle.Update(tx)
			if err := writeBundle(args[0], bundle); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tx.Status(), args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&keyfile, "key", "", "signing keyfile (defaults to the configured keypair)")
	cmd.Flags().StringVar(&name, "keystore-name", "", "sign with a keystore entry")
	cmd.MarkFlagsMutuallyExclusive("key", "keystore-name")
	return cmd
}

func (c *cli) txInspectCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "inspect <bundle>",
		Short: "Describe the transaction in a co-sign bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := readBundle(args[0])
			if err != nil {
				return err
			}
			tx, err := bundle.Transaction(c.slogger)
			if err != nil {
				return err
			}
			id, err := bundle.Id()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if raw {
				dump, err := cbor.Dump(bundle.Cbor())
				if err != nil {
					return errors.Wrap(err, "dump bundle")
				}
				fmt.Fprint(w, dump)
			}
			msg := tx.Message()
			fmt.Fprintf(w, "bundle:    %s\n", id)
			if bundle.Note != "" {
				fmt.Fprintf(w, "note:      %s\n", bundle.Note)
			}
			fmt.Fprintf(w, "status:    %s\n", tx.Status())
			fmt.Fprintf(w, "blockhash: %s\n", msg.RecentBlockhash)
			sigs := tx.Signatures()
			for i, signer := range msg.SignerKeys() {
				state := "missing"
				if !sigs[i].IsZero() {
					state = sigs[i].String()
				}
				fmt.Fprintf(w, "signer %d:  %s %s\n", i, signer, state)
			}
			for i, instr := range msg.Instructions {
				programId := msg.AccountKeys[instr.ProgramIdIndex]
				fmt.Fprintf(w, "instruction %d: program %s", i, programId)
				if programId == system.ProgramId {
					if instrType, err := system.ParseInstructionType(instr.Data); err == nil {
						fmt.Fprintf(w, " %s", instrType)
					}
					if lamports, err := system.ParseTransfer(instr.Data); err == nil {
						fmt.Fprintf(w, " lamports=%d", lamports)
					}
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "also dump the CBOR structure of the bundle")
	return cmd
}

func (c *cli) txVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <bundle>",
		Short: "Verify every signature in a co-sign bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := readBundle(args[0])
			if err != nil {
				return err
			}
			tx, err := bundle.Transaction(c.slogger)
			if err != nil {
				return err
			}
			if err := tx.Verify(); err != nil {
				return errors.Wrap(err, "verify")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", tx.Signature())
			return nil
		},
	}
}
