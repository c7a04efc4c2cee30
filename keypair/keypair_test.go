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

package keypair_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/internal/test"
	"github.com/pacanele/solkit/keypair"
	"github.com/stretchr/testify/require"
)

// RFC 8032 section 7.1, test 1
var (
	rfcSecret    = test.DecodeHexString("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	rfcPublic    = test.DecodeHexString("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	rfcSignature = test.DecodeHexString(
		"e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
	)
)

func TestFromSeedVector(t *testing.T) {
	kp, err := keypair.FromSeed(rfcSecret)
	require.NoError(t, err, "FromSeed failed")
	defer kp.Zeroize()
	require.Equal(t, rfcPublic, kp.Pubkey().Bytes(), "public key mismatch")
	sig, err := kp.Sign([]byte{})
	require.NoError(t, err, "Sign failed")
	require.Equal(t, rfcSignature, sig.Bytes(), "signature mismatch")
}

func TestGenerate(t *testing.T) {
	kp1, err := keypair.Generate()
	require.NoError(t, err, "Generate failed")
	defer kp1.Zeroize()
	kp2, err := keypair.Generate()
	require.NoError(t, err, "Generate failed")
	defer kp2.Zeroize()
	require.NotEqual(t, kp1.Pubkey(), kp2.Pubkey(), "generated keypairs should differ")
	require.True(t, kp1.Pubkey().IsOnCurve())
}

func TestBytesRoundTrip(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)
	defer kp.Zeroize()
	raw := kp.ToBytes()
	require.Len(t, raw, keypair.KeypairSize)
	require.Equal(t, kp.Pubkey().Bytes(), raw[keypair.SeedSize:])
	restored, err := keypair.FromBytes(raw)
	require.NoError(t, err, "FromBytes failed")
	defer restored.Zeroize()
	require.Equal(t, kp.Pubkey(), restored.Pubkey())
	require.Equal(t, raw, restored.ToBytes())
}

func TestFromBytesErrors(t *testing.T) {
	_, err := keypair.FromBytes(make([]byte, keypair.KeypairSize-1))
	require.ErrorIs(t, err, common.ErrInvalidLength)
	_, err = keypair.FromBytes(make([]byte, keypair.KeypairSize+1))
	require.ErrorIs(t, err, common.ErrInvalidLength)
	// Secret from the RFC vector with a different public half
	mismatched := append(append([]byte{}, rfcSecret...), rfcSecret...)
	_, err = keypair.FromBytes(mismatched)
	require.ErrorIs(t, err, keypair.ErrKeypairMismatch)
}

func TestSignVerify(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)
	defer kp.Zeroize()
	msg := []byte("arbitrary message bytes")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.NoError(t, common.VerifySignature(kp.Pubkey(), sig, msg))
	msg[0] ^= 0x01
	require.Error(t, common.VerifySignature(kp.Pubkey(), sig, msg))
}

func TestZeroize(t *testing.T) {
	kp, err := keypair.FromSeed(rfcSecret)
	require.NoError(t, err)
	pub := kp.Pubkey()
	kp.Zeroize()
	require.True(t, kp.IsZeroized())
	require.Equal(t, make([]byte, keypair.KeypairSize), kp.ToBytes(), "secret should be cleared")
	_, err = kp.Sign([]byte("msg"))
	require.ErrorIs(t, err, keypair.ErrZeroized)
	// Public key survives, second call is harmless
	require.Equal(t, pub, kp.Pubkey())
	kp.Zeroize()
	// The caller's seed is never aliased
	require.Equal(t, byte(0x9d), rfcSecret[0])
}

func TestSignerInterface(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)
	defer kp.Zeroize()
	var signer common.Signer = kp
	require.Equal(t, kp.Pubkey(), signer.Pubkey())
	require.Equal(t, kp.Pubkey().String(), kp.String())
}

func TestFromMnemonic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	// BIP-39 seed for the mnemonic above with an empty passphrase
	bip39Seed := test.DecodeHexString(
		"5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
	)
	kp, err := keypair.FromMnemonic(mnemonic, "")
	require.NoError(t, err, "FromMnemonic failed")
	defer kp.Zeroize()
	expected, err := keypair.FromSeed(bip39Seed[:keypair.SeedSize])
	require.NoError(t, err)
	defer expected.Zeroize()
	require.Equal(t, expected.Pubkey(), kp.Pubkey())
	withPassphrase, err := keypair.FromMnemonic(mnemonic, "TREZOR")
	require.NoError(t, err)
	defer withPassphrase.Zeroize()
	require.NotEqual(t, kp.Pubkey(), withPassphrase.Pubkey())
	_, err = keypair.FromMnemonic("abandon abandon", "")
	require.ErrorIs(t, err, keypair.ErrInvalidMnemonic)
}

func TestNewMnemonic(t *testing.T) {
	mnemonic, err := keypair.NewMnemonic()
	require.NoError(t, err)
	kp, err := keypair.FromMnemonic(mnemonic, "")
	require.NoError(t, err)
	kp.Zeroize()
}

func TestKeyfile(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)
	defer kp.Zeroize()
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, keypair.WriteFile(path, kp))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	loaded, err := keypair.ReadFile(path)
	require.NoError(t, err)
	defer loaded.Zeroize()
	require.Equal(t, kp.Pubkey(), loaded.Pubkey())
}

func TestUnmarshalJSONKeyErrors(t *testing.T) {
	_, err := keypair.UnmarshalJSONKey([]byte(`"not an array"`))
	require.ErrorIs(t, err, common.ErrInvalidEncoding)
	_, err = keypair.UnmarshalJSONKey([]byte(`[1,2,256]`))
	require.ErrorIs(t, err, common.ErrInvalidEncoding)
	_, err = keypair.UnmarshalJSONKey([]byte(`[1,2,3]`))
	require.ErrorIs(t, err, common.ErrInvalidLength)
}
