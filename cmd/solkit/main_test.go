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
	"bytes"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pacanele/solkit/internal/test"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeTestConfig points the keypair and keystore at a temporary directory
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := "Keypair = \"" + filepath.Join(dir, "id.json") + "\"\n" +
		"Keystore = \"" + filepath.Join(dir, "keystore") + "\"\n" +
		"LogLevel = \"warn\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return dir, configPath
}

func runCmd(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	dir, configPath := writeTestConfig(t)
	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "id.json"), cfg.Keypair)
	require.Equal(t, filepath.Join(dir, "keystore"), cfg.Keystore)
	require.Equal(t, "warn", cfg.LogLevel)
	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestAddressCommands(t *testing.T) {
	_, configPath := writeTestConfig(t)
	out, err := runCmd(
		t,
		configPath,
		"address", "create-with-seed",
		"11111111111111111111111111111111",
		"limber chicken: 4/45",
		"11111111111111111111111111111111",
	)
	require.NoError(t, err)
	require.Equal(t, "9h1HyLCW5dZnBVap8C5egQ9Z6pHyjsh5MNy83iPqqRuq\n", out)
	out, err = runCmd(t, configPath, "address", "is-on-curve", "11111111111111111111111111111111")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
	out, err = runCmd(t, configPath, "address", "find-program-address", test.Pubkey("program").String(), "escrow")
	require.NoError(t, err)
	require.Len(t, strings.Fields(out), 2)
	_, err = runCmd(t, configPath, "address", "is-on-curve", "not-base58!")
	require.Error(t, err)
}

func TestCoSignWorkflow(t *testing.T) {
	dir, configPath := writeTestConfig(t)
	alice := filepath.Join(dir, "alice.json")
	bob := filepath.Join(dir, "bob.json")
	bundle := filepath.Join(dir, "bundle.cbor")

	out, err := runCmd(t, configPath, "keygen", "--outfile", alice)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "pubkey: "))
	_, err = runCmd(t, configPath, "keygen", "--outfile", alice)
	require.Error(t, err, "existing keyfile should not be overwritten")
	_, err = runCmd(t, configPath, "keygen", "--mnemonic", "--outfile", bob)
	require.NoError(t, err)
	bobPubkey, err := runCmd(t, configPath, "pubkey", bob)
	require.NoError(t, err)

	out, err = runCmd(
		t,
		configPath,
		"tx", "transfer",
		"--from", alice,
		"--to", test.Pubkey("recipient").String(),
		"--fee-payer", strings.TrimSpace(bobPubkey),
		"--lamports", "5000",
		"--blockhash", test.Hash("recent").String(),
		"--cu-limit", "200000",
		"--note", "rent split",
		"--out", bundle,
	)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "PartiallySigned"))
	_, err = runCmd(t, configPath, "tx", "verify", bundle)
	require.Error(t, err)

	out, err = runCmd(t, configPath, "tx", "sign", "--key", bob, bundle)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "FullySigned"))
	out, err = runCmd(t, configPath, "tx", "verify", bundle)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "OK "))

	out, err = runCmd(t, configPath, "tx", "inspect", "--raw", bundle)
	require.NoError(t, err)
	require.Contains(t, out, "note:      rent split")
	require.Contains(t, out, "Transfer lamports=5000")
	require.Contains(t, out, "status:    FullySigned")
	require.True(t, strings.HasPrefix(out, "[\n  0x1,\n"), "raw dump should come first")
}

func TestKeystoreCommands(t *testing.T) {
	dir, configPath := writeTestConfig(t)
	keyfile := filepath.Join(dir, "id.json")
	_, err := runCmd(t, configPath, "keygen")
	require.NoError(t, err)
	require.FileExists(t, keyfile)
	pubkey, err := runCmd(t, configPath, "pubkey")
	require.NoError(t, err)
	_, err = runCmd(t, configPath, "keystore", "add", "main")
	require.NoError(t, err)
	out, err := runCmd(t, configPath, "keystore", "list")
	require.NoError(t, err)
	require.Equal(t, "main "+pubkey, out)
	_, err = runCmd(t, configPath, "keystore", "remove", "main")
	require.NoError(t, err)
	out, err = runCmd(t, configPath, "keystore", "list")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestElgamalCommands(t *testing.T) {
	dir, configPath := writeTestConfig(t)
	signer := filepath.Join(dir, "signer.json")
	_, err := runCmd(t, configPath, "keygen", "--outfile", signer)
	require.NoError(t, err)
	first, err := runCmd(t, configPath, "elgamal", "keygen", "--signer", signer, "--seed", "acct")
	require.NoError(t, err)
	second, err := runCmd(t, configPath, "elgamal", "keygen", "--signer", signer, "--seed", "acct")
	require.NoError(t, err)
	require.Equal(t, first, second)
	out, err := runCmd(t, configPath, "elgamal", "decompress", strings.TrimSpace(first))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "valid "))
	_, err = runCmd(t, configPath, "elgamal", "decompress", base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xff}, 32)))
	require.Error(t, err)
}
