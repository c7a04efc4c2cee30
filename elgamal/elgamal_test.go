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

package elgamal_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/elgamal"
	"github.com/pacanele/solkit/keypair"
	"github.com/stretchr/testify/require"
)

func TestPubkeyCompressRoundTrip(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	pod := kp.Pubkey().Compress()
	decompressed, err := pod.Decompress()
	require.NoError(t, err)
	require.True(t, decompressed.Equals(kp.Pubkey()))
	require.Equal(t, pod, decompressed.Compress())
	parsed, err := elgamal.NewPodPubkey(common.TextInput(pod.String()))
	require.NoError(t, err)
	require.True(t, parsed.Equals(pod))
	fromBytes, err := elgamal.NewPodPubkey(common.BytesInput(pod[:]))
	require.NoError(t, err)
	require.Equal(t, pod, fromBytes)
}

func TestPubkeyIsIndependentCopy(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	first := kp.Pubkey()
	second := kp.Pubkey()
	require.NotSame(t, first, second)
	require.True(t, first.Equals(second))
	other, err := elgamal.NewKeypair()
	require.NoError(t, err)
	require.False(t, first.Equals(other.Pubkey()))
}

func TestDecompressInvalidPoint(t *testing.T) {
	// All 0xff is not a canonical field element encoding
	var pod elgamal.PodPubkey
	copy(pod[:], bytes.Repeat([]byte{0xff}, elgamal.PubkeySize))
	_, err := pod.Decompress()
	require.ErrorIs(t, err, elgamal.ErrInvalidCurvePoint)
	// Zero bytes encode the identity, which is a valid element
	_, err = elgamal.PodPubkey{}.Decompress()
	require.NoError(t, err)
}

func TestNewPodPubkeyErrors(t *testing.T) {
	_, err := elgamal.NewPodPubkey(common.TextInput("not base64!"))
	require.ErrorIs(t, err, common.ErrInvalidEncoding)
	_, err = elgamal.NewPodPubkey(common.BytesInput(make([]byte, 31)))
	require.ErrorIs(t, err, common.ErrInvalidLength)
	_, err = elgamal.NewPodPubkey(nil)
	require.ErrorIs(t, err, common.ErrNilInput)
}

func TestEncryptDecrypt(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	pubkey := kp.Pubkey()
	for _, amount := range []uint64{0, 1, 55, 65535, 65536, 1<<20 + 17} {
		ct, opening := pubkey.Encrypt(amount)
		require.NotNil(t, opening)
		got, err := kp.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, amount, got, "amount mismatch")
	}
}

func TestEncryptWithOpeningDeterministic(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	opening := elgamal.NewOpening()
	first := kp.Pubkey().EncryptWithOpening(42, opening)
	second := kp.Pubkey().EncryptWithOpening(42, opening)
	require.True(t, first.Equals(second))
	require.Equal(t, first.Compress(), second.Compress())
}

func TestZeroValues(t *testing.T) {
	var pub elgamal.Pubkey
	require.Equal(t, elgamal.PodPubkey{}, pub.Compress())
	require.True(t, pub.Equals(&elgamal.Pubkey{}))
	identity, err := elgamal.PodPubkey{}.Decompress()
	require.NoError(t, err)
	require.True(t, pub.Equals(identity))
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	require.False(t, pub.Equals(kp.Pubkey()))
	var ct elgamal.Ciphertext
	require.Equal(t, elgamal.PodCiphertext{}, ct.Compress())
	amount, err := kp.Decrypt(&ct)
	require.NoError(t, err)
	require.Equal(t, uint64(0), amount)
	enc := kp.Pubkey().EncryptWithOpening(5, elgamal.NewOpening())
	require.True(t, enc.Add(&ct).Equals(enc))
	require.True(t, ct.Add(enc).Equals(enc))
	amount, err = kp.Decrypt(enc.Subtract(&ct))
	require.NoError(t, err)
	require.Equal(t, uint64(5), amount)
}

func TestHomomorphicAddSubtract(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	pubkey := kp.Pubkey()
	a, _ := pubkey.Encrypt(700)
	b, _ := pubkey.Encrypt(300)
	sum, err := kp.Decrypt(a.Add(b))
	require.NoError(t, err)
	require.Equal(t, uint64(1000), sum)
	diff, err := kp.Decrypt(a.Subtract(b))
	require.NoError(t, err)
	require.Equal(t, uint64(400), diff)
	// A negative result wraps around the group order and cannot be recovered
	_, err = kp.Decrypt(b.Subtract(a))
	require.ErrorIs(t, err, elgamal.ErrDecryptionFailed)
}

func TestCiphertextPod(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	ct, _ := kp.Pubkey().Encrypt(12345)
	pod := ct.Compress()
	parsed, err := elgamal.NewPodCiphertext(common.TextInput(pod.String()))
	require.NoError(t, err)
	require.Equal(t, pod, parsed)
	decoded, err := parsed.Decompress()
	require.NoError(t, err)
	require.True(t, decoded.Equals(ct))
	amount, err := kp.Decrypt(decoded)
	require.NoError(t, err)
	require.Equal(t, uint64(12345), amount)
	var bad elgamal.PodCiphertext
	copy(bad[32:], bytes.Repeat([]byte{0xff}, 32))
	_, err = bad.Decompress()
	require.ErrorIs(t, err, elgamal.ErrInvalidCurvePoint)
}

func TestWrongKeyDoesNotDecrypt(t *testing.T) {
	alice, err := elgamal.NewKeypair()
	require.NoError(t, err)
	bob, err := elgamal.NewKeypair()
	require.NoError(t, err)
	ct, _ := alice.Pubkey().Encrypt(5)
	amount, err := bob.Decrypt(ct)
	if err == nil {
		require.NotEqual(t, uint64(5), amount)
	}
}

func TestSecretKeyRoundTrip(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	secret, err := kp.SecretKey()
	require.NoError(t, err)
	require.Len(t, secret, elgamal.SecretKeySize)
	restored, err := elgamal.KeypairFromSecretKey(secret)
	require.NoError(t, err)
	require.True(t, restored.Pubkey().Equals(kp.Pubkey()))
	_, err = elgamal.KeypairFromSecretKey(make([]byte, elgamal.SecretKeySize))
	require.ErrorIs(t, err, elgamal.ErrInvalidScalar)
	_, err = elgamal.KeypairFromSecretKey(secret[:5])
	require.ErrorIs(t, err, elgamal.ErrInvalidScalar)
}

func TestZeroize(t *testing.T) {
	kp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	pubkey := kp.Pubkey()
	ct, _ := pubkey.Encrypt(9)
	kp.Zeroize()
	kp.Zeroize()
	require.True(t, kp.IsZeroized())
	_, err = kp.Decrypt(ct)
	require.ErrorIs(t, err, elgamal.ErrZeroized)
	_, err = kp.SecretKey()
	require.ErrorIs(t, err, elgamal.ErrZeroized)
	require.True(t, kp.Pubkey().Equals(pubkey))
}

func TestKeypairFromSigner(t *testing.T) {
	signer, err := keypair.FromSeed(bytes.Repeat([]byte{7}, keypair.SeedSize))
	require.NoError(t, err)
	first, err := elgamal.KeypairFromSigner(signer, []byte("token-account"))
	require.NoError(t, err)
	second, err := elgamal.KeypairFromSigner(signer, []byte("token-account"))
	require.NoError(t, err)
	require.True(t, first.Pubkey().Equals(second.Pubkey()))
	other, err := elgamal.KeypairFromSigner(signer, []byte("other-account"))
	require.NoError(t, err)
	require.False(t, first.Pubkey().Equals(other.Pubkey()))
	signer.Zeroize()
	_, err = elgamal.KeypairFromSigner(signer, []byte("token-account"))
	require.ErrorIs(t, err, elgamal.ErrInvalidSigner)
	require.True(t, errors.Is(err, keypair.ErrZeroized))
}
