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

// Command solkit manages keys, derives addresses and builds, signs and
// verifies transactions offline. It never talks to the network.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/keypair"
	"github.com/pacanele/solkit/keystore"
)

// Version info (injected at build time)
var Version = "dev"

type cli struct {
	configFile string
	debug      bool
	config     *Config
	logger     *zap.Logger
	slogger    *slog.Logger
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:           "solkit",
		Short:         "Offline Solana key, address and transaction toolkit",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(c.keygenCmd())
	rootCmd.AddCommand(c.pubkeyCmd())
	rootCmd.AddCommand(c.addressCmd())
	rootCmd.AddCommand(c.elgamalCmd())
	rootCmd.AddCommand(c.txCmd())
	rootCmd.AddCommand(c.keystoreCmd())
	return rootCmd
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.configFile)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.LogLevel = "debug"
	}
	logger, err := newLogger(cfg.LogLevel, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	c.config = cfg
	c.logger = logger
	c.slogger = newSlogLogger(logger)
	return nil
}

// loadSigner loads a keypair from the keystore when name is set, otherwise
// from keyfile, falling back to the configured default keyfile
func (c *cli) loadSigner(keyfile string, name string) (*keypair.Keypair, error) {
	if name != "" {
		ks, err := c.openKeystore()
		if err != nil {
			return nil, err
		}
		defer ks.Close()
		kp, err := ks.Get(name)
		if err != nil {
			return nil, errors.Wrapf(err, "load %q from keystore", name)
		}
		return kp, nil
	}
	if keyfile == "" {
		keyfile = c.config.Keypair
	}
	kp, err := keypair.ReadFile(keyfile)
	if err != nil {
		return nil, errors.Wrapf(err, "read keyfile %s", keyfile)
	}
	c.logger.Debug("loaded keypair", zap.String("keyfile", keyfile), zap.Stringer("pubkey", kp.Pubkey()))
	return kp, nil
}

func (c *cli) openKeystore() (*keystore.Keystore, error) {
	if err := os.MkdirAll(c.config.Keystore, 0o700); err != nil {
		return nil, errors.Wrap(err, "create keystore directory")
	}
	ks, err := keystore.Open(c.config.Keystore, keystore.WithLogger(c.slogger))
	if err != nil {
		return nil, errors.Wrap(err, "open keystore")
	}
	return ks, nil
}

func parsePubkey(s string) (common.Pubkey, error) {
	pubkey, err := common.NewPubkey(common.TextInput(s))
	if err != nil {
		return common.Pubkey{}, errors.Wrapf(err, "invalid pubkey %q", s)
	}
	return pubkey, nil
}
