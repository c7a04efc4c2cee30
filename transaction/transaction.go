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

// Package transaction compiles instructions into messages and manages the
// signature slots of the resulting transactions
package transaction

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/instruction"
	"github.com/pacanele/solkit/internal/shortvec"
)

// SignatureStatus summarizes the state of the signature slots
type SignatureStatus int

const (
	StatusUnsigned SignatureStatus = iota
	StatusPartiallySigned
	StatusFullySigned
	StatusInvalid
)

func (s SignatureStatus) String() string {
	switch s {
	case StatusUnsigned:
		return "Unsigned"
	case StatusPartiallySigned:
		return "PartiallySigned"
	case StatusFullySigned:
		return "FullySigned"
	case StatusInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("SignatureStatus(%d)", int(s))
	}
}

// Transaction is a message plus one signature slot per required signer.
// Slots are positionally aligned with the first NumRequiredSignatures
// account keys. An empty slot holds the zero signature.
type Transaction struct {
	signatures []common.Signature
	message    *Message
	logger     *slog.Logger
}

// OptionFunc is a type that represents functions that modify the Transaction config
type OptionFunc func(*Transaction)

// WithLogger specifies the logger to use. This defaults to slog.Default()
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(t *Transaction) {
		t.logger = logger
	}
}

// New compiles the instructions into an unsigned transaction with an all-zero
// recent blockhash. The blockhash is set by the first PartialSign or Sign.
func New(
	instructions *instruction.Instructions,
	payer *common.Pubkey,
	opts ...OptionFunc,
) (*Transaction, error) {
	msg, err := CompileMessage(instructions.All(), payer, common.Hash{})
	if err != nil {
		return nil, err
	}
	return NewFromMessage(msg, opts...), nil
}

// NewFromMessage wraps an existing message in an unsigned transaction
func NewFromMessage(msg *Message, opts ...OptionFunc) *Transaction {
	t := &Transaction{
		message:    msg,
		signatures: make([]common.Signature, msg.Header.NumRequiredSignatures),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Message returns the transaction's message. Changes made through the
// returned pointer are reflected in later calls to Verify and ToBytes.
func (t *Transaction) Message() *Message {
	return t.message
}

// MessageData returns the bytes that signers sign
func (t *Transaction) MessageData() []byte {
	return t.message.Serialize()
}

// Signatures returns a copy of the signature slots
func (t *Transaction) Signatures() []common.Signature {
	t.syncSlots()
	return slices.Clone(t.signatures)
}

// Signature returns the first slot, which identifies the transaction once signed
func (t *Transaction) Signature() common.Signature {
	t.syncSlots()
	if len(t.signatures) == 0 {
		return common.Signature{}
	}
	return t.signatures[0]
}

// syncSlots resizes the slots if the message header was edited in place
func (t *Transaction) syncSlots() {
	n := int(t.message.Header.NumRequiredSignatures)
	if len(t.signatures) == n {
		return
	}
	slots := make([]common.Signature, n)
	copy(slots, t.signatures)
	t.signatures = slots
}

// PartialSign signs the message with each of the signers and stores the
// signatures in their slots. A blockhash different from the message's
// replaces it and clears every existing signature first. All signers are
// checked and every signature computed before anything is modified, so a
// failure leaves the transaction unchanged.
func (t *Transaction) PartialSign(
	signers []common.Signer,
	recentBlockhash common.Hash,
) error {
	t.syncSlots()
	indexes := make([]int, len(signers))
	for i, signer := range signers {
		idx := t.message.signerIndex(signer.Pubkey())
		if idx < 0 {
			return UnknownSignerError{Signer: signer.Pubkey()}
		}
		indexes[i] = idx
	}
	// Signatures are computed over a copy with the new blockhash
	signable := *t.message
	signable.RecentBlockhash = recentBlockhash
	msgData := signable.Serialize()
	sigs := make([]common.Signature, len(signers))
	for i, signer := range signers {
		sig, err := signer.Sign(msgData)
		if err != nil {
			return fmt.Errorf("sign with %s: %w", signer.Pubkey(), err)
		}
		sigs[i] = sig
	}
	if t.message.RecentBlockhash != recentBlockhash {
		t.logger.Debug(
			"replacing recent blockhash",
			"component", "transaction",
			"old", t.message.RecentBlockhash.String(),
			"new", recentBlockhash.String(),
			"cleared_signatures", t.countSigned(),
		)
		t.message.RecentBlockhash = recentBlockhash
		clear(t.signatures)
	}
	for i, idx := range indexes {
		t.signatures[idx] = sigs[i]
		t.logger.Debug(
			"added signature",
			"component", "transaction",
			"signer", signers[i].Pubkey().String(),
			"slot", idx,
		)
	}
	return nil
}

// Sign is PartialSign followed by a check that every slot is filled
func (t *Transaction) Sign(
	signers []common.Signer,
	recentBlockhash common.Hash,
) error {
	if err := t.PartialSign(signers, recentBlockhash); err != nil {
		return err
	}
	for i, sig := range t.signatures {
		if sig.IsZero() {
			return fmt.Errorf(
				"%w: %w",
				ErrNotEnoughSigners,
				MissingSignatureError{Index: i, Signer: t.message.AccountKeys[i]},
			)
		}
	}
	return nil
}

// AddSignature stores a signature produced elsewhere for the given signer.
// The signature must verify against the current message.
func (t *Transaction) AddSignature(signer common.Pubkey, sig common.Signature) error {
	t.syncSlots()
	idx := t.message.signerIndex(signer)
	if idx < 0 {
		return UnknownSignerError{Signer: signer}
	}
	if !sig.Verify(signer, t.message.Serialize()) {
		return InvalidSignatureError{Index: idx, Signer: signer}
	}
	t.signatures[idx] = sig
	return nil
}

// Verify checks that every slot is filled and that each signature verifies
// against its signer over the current message
func (t *Transaction) Verify() error {
	t.syncSlots()
	signerKeys := t.message.SignerKeys()
	if len(signerKeys) != len(t.signatures) {
		return fmt.Errorf(
			"%w: %d signature slots for %d signer keys",
			ErrMalformedTransaction,
			len(t.signatures),
			len(signerKeys),
		)
	}
	for i, sig := range t.signatures {
		if sig.IsZero() {
			return MissingSignatureError{Index: i, Signer: signerKeys[i]}
		}
	}
	msgData := t.message.Serialize()
	for i, sig := range t.signatures {
		if !sig.Verify(signerKeys[i], msgData) {
			return InvalidSignatureError{Index: i, Signer: signerKeys[i]}
		}
	}
	return nil
}

// IsSigned reports whether every slot is filled. It does not verify signatures.
func (t *Transaction) IsSigned() bool {
	t.syncSlots()
	for _, sig := range t.signatures {
		if sig.IsZero() {
			return false
		}
	}
	return true
}

// Status classifies the transaction by its signature slots
func (t *Transaction) Status() SignatureStatus {
	t.syncSlots()
	signed := t.countSigned()
	switch {
	case signed == 0 && len(t.signatures) > 0:
		return StatusUnsigned
	case signed < len(t.signatures):
		return StatusPartiallySigned
	case t.Verify() != nil:
		return StatusInvalid
	default:
		return StatusFullySigned
	}
}

func (t *Transaction) countSigned() int {
	var ret int
	for _, sig := range t.signatures {
		if !sig.IsZero() {
			ret++
		}
	}
	return ret
}

// ToBytes returns the wire form: a compact-u16 signature count, the
// signatures, then the serialized message
func (t *Transaction) ToBytes() []byte {
	t.syncSlots()
	msgData := t.message.Serialize()
	buf := make(
		[]byte,
		0,
		shortvec.MaxEncodingLength+len(t.signatures)*common.SignatureSize+len(msgData),
	)
	buf = shortvec.Append(buf, len(t.signatures))
	for _, sig := range t.signatures {
		buf = append(buf, sig[:]...)
	}
	return append(buf, msgData...)
}

// FromBytes decodes the wire form produced by ToBytes. Signatures are
// carried over as-is and are not verified.
func FromBytes(data []byte, opts ...OptionFunc) (*Transaction, error) {
	numSigs, size, err := shortvec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	pos := size
	if numSigs*common.SignatureSize > len(data)-pos {
		return nil, fmt.Errorf(
			"%w: %d signatures do not fit in %d bytes",
			ErrMalformedTransaction,
			numSigs,
			len(data)-pos,
		)
	}
	sigs := make([]common.Signature, numSigs)
	for i := range sigs {
		copy(sigs[i][:], data[pos:pos+common.SignatureSize])
		pos += common.SignatureSize
	}
	msg, n, err := decodeMessage(data[pos:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	pos += n
	if pos != len(data) {
		return nil, fmt.Errorf(
			"%w: %d trailing bytes",
			ErrMalformedTransaction,
			len(data)-pos,
		)
	}
	if numSigs != int(msg.Header.NumRequiredSignatures) {
		return nil, fmt.Errorf(
			"%w: %d signatures for %d required signers",
			ErrMalformedTransaction,
			numSigs,
			msg.Header.NumRequiredSignatures,
		)
	}
	t := NewFromMessage(msg, opts...)
	t.signatures = sigs
	return t, nil
}
