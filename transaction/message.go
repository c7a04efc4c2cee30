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

package transaction

import (
	"fmt"
	"math"
	"slices"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/instruction"
	"github.com/pacanele/solkit/internal/shortvec"
)

const (
	// MaxAccounts is the largest account table a message can index with one byte
	MaxAccounts = math.MaxUint8 + 1

	// MessageHeaderSize is the size of the encoded MessageHeader
	MessageHeaderSize = 3

	// versionPrefixMask marks versioned (non-legacy) messages
	versionPrefixMask = 0x80
)

// MessageHeader describes how the account table is partitioned. The table is
// ordered signer+writable, signer+readonly, writable, readonly.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction is an instruction whose addresses have been replaced by
// indexes into the message account table
type CompiledInstruction struct {
	ProgramIdIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is the canonical signable form of a transaction. Changing
// RecentBlockhash is allowed; Serialize always reflects the current value.
type Message struct {
	Header          MessageHeader
	AccountKeys     []common.Pubkey
	RecentBlockhash common.Hash
	Instructions    []CompiledInstruction
}

type keyMeta struct {
	isSigner   bool
	isWritable bool
}

// compiledKeys collects every referenced address in first-seen order
type compiledKeys struct {
	order []common.Pubkey
	metas map[common.Pubkey]*keyMeta
}

func (c *compiledKeys) add(pubkey common.Pubkey, isSigner, isWritable bool) {
	meta, ok := c.metas[pubkey]
	if !ok {
		meta = &keyMeta{}
		c.metas[pubkey] = meta
		c.order = append(c.order, pubkey)
	}
	meta.isSigner = meta.isSigner || isSigner
	meta.isWritable = meta.isWritable || isWritable
}

// CompileMessage flattens the instructions into a Message. The payer, when
// provided, is always the first account and a writable signer. Other accounts
// are deduplicated with their flags merged, then grouped signer+writable,
// signer+readonly, writable, readonly, keeping first-seen order within each
// group. Program ids are read-only unless referenced otherwise.
func CompileMessage(
	instructions []instruction.Instruction,
	payer *common.Pubkey,
	recentBlockhash common.Hash,
) (*Message, error) {
	keys := &compiledKeys{
		metas: make(map[common.Pubkey]*keyMeta),
	}
	if payer != nil {
		keys.add(*payer, true, true)
	}
	for _, instr := range instructions {
		for _, acct := range instr.Accounts {
			keys.add(acct.Pubkey, acct.IsSigner, acct.IsWritable)
		}
	}
	for _, instr := range instructions {
		keys.add(instr.ProgramId, false, false)
	}
	var signerWritable, signerReadonly, writable, readonly []common.Pubkey
	for _, pubkey := range keys.order {
		meta := keys.metas[pubkey]
		switch {
		case meta.isSigner && meta.isWritable:
			signerWritable = append(signerWritable, pubkey)
		case meta.isSigner:
			signerReadonly = append(signerReadonly, pubkey)
		case meta.isWritable:
			writable = append(writable, pubkey)
		default:
			readonly = append(readonly, pubkey)
		}
	}
	numSigners := len(signerWritable) + len(signerReadonly)
	if len(keys.order) > MaxAccounts ||
		numSigners > math.MaxUint8 ||
		len(readonly) > math.MaxUint8 {
		return nil, fmt.Errorf(
			"%w: %d accounts, %d signers",
			ErrTooManyAccounts,
			len(keys.order),
			numSigners,
		)
	}
	msg := &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       uint8(numSigners),
			NumReadonlySignedAccounts:   uint8(len(signerReadonly)),
			NumReadonlyUnsignedAccounts: uint8(len(readonly)),
		},
		AccountKeys:     make([]common.Pubkey, 0, len(keys.order)),
		RecentBlockhash: recentBlockhash,
		Instructions:    make([]CompiledInstruction, 0, len(instructions)),
	}
	msg.AccountKeys = append(msg.AccountKeys, signerWritable...)
	msg.AccountKeys = append(msg.AccountKeys, signerReadonly...)
	msg.AccountKeys = append(msg.AccountKeys, writable...)
	msg.AccountKeys = append(msg.AccountKeys, readonly...)
	indexes := make(map[common.Pubkey]uint8, len(msg.AccountKeys))
	for i, pubkey := range msg.AccountKeys {
		indexes[pubkey] = uint8(i)
	}
	if len(instructions) > shortvec.MaxValue {
		return nil, fmt.Errorf(
			"%w: %d instructions",
			ErrMalformedMessage,
			len(instructions),
		)
	}
	for i, instr := range instructions {
		if len(instr.Data) > shortvec.MaxValue ||
			len(instr.Accounts) > shortvec.MaxValue {
			return nil, fmt.Errorf(
				"%w: instruction %d is too large",
				ErrMalformedMessage,
				i,
			)
		}
		compiled := CompiledInstruction{
			ProgramIdIndex: indexes[instr.ProgramId],
			Accounts:       make([]uint8, len(instr.Accounts)),
			Data:           slices.Clone(instr.Data),
		}
		for j, acct := range instr.Accounts {
			compiled.Accounts[j] = indexes[acct.Pubkey]
		}
		msg.Instructions = append(msg.Instructions, compiled)
	}
	return msg, nil
}

// Serialize returns the wire form of the message, which is what signers sign
func (m *Message) Serialize() []byte {
	buf := make([]byte, 0, m.serializedSize())
	buf = append(
		buf,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)
	buf = shortvec.Append(buf, len(m.AccountKeys))
	for _, pubkey := range m.AccountKeys {
		buf = append(buf, pubkey[:]...)
	}
	buf = append(buf, m.RecentBlockhash[:]...)
	buf = shortvec.Append(buf, len(m.Instructions))
	for _, instr := range m.Instructions {
		buf = append(buf, instr.ProgramIdIndex)
		buf = shortvec.Append(buf, len(instr.Accounts))
		buf = append(buf, instr.Accounts...)
		buf = shortvec.Append(buf, len(instr.Data))
		buf = append(buf, instr.Data...)
	}
	return buf
}

func (m *Message) serializedSize() int {
	size := MessageHeaderSize + shortvec.MaxEncodingLength +
		len(m.AccountKeys)*common.PubkeySize +
		common.HashSize + shortvec.MaxEncodingLength
	for _, instr := range m.Instructions {
		size += 1 + 2*shortvec.MaxEncodingLength + len(instr.Accounts) + len(instr.Data)
	}
	return size
}

// DeserializeMessage decodes the wire form of a message. The whole input must be consumed.
func DeserializeMessage(data []byte) (*Message, error) {
	msg, n, err := decodeMessage(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf(
			"%w: %d trailing bytes",
			ErrMalformedMessage,
			len(data)-n,
		)
	}
	return msg, nil
}

// SignerKeys returns the addresses that must sign the message, in slot order
func (m *Message) SignerKeys() []common.Pubkey {
	n := min(int(m.Header.NumRequiredSignatures), len(m.AccountKeys))
	return slices.Clone(m.AccountKeys[:n])
}

// IsSigner reports whether the account at index i must sign
func (m *Message) IsSigner(i int) bool {
	return i >= 0 && i < int(m.Header.NumRequiredSignatures) && i < len(m.AccountKeys)
}

// IsWritable reports whether the account at index i is writable
func (m *Message) IsWritable(i int) bool {
	if i < 0 || i >= len(m.AccountKeys) {
		return false
	}
	numSigners := int(m.Header.NumRequiredSignatures)
	if i < numSigners {
		return i < numSigners-int(m.Header.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(m.Header.NumReadonlyUnsignedAccounts)
}

// Payer returns the fee payer, which is the first signer
func (m *Message) Payer() (common.Pubkey, bool) {
	if m.Header.NumRequiredSignatures == 0 || len(m.AccountKeys) == 0 {
		return common.Pubkey{}, false
	}
	return m.AccountKeys[0], true
}

// signerIndex returns the signature slot for the pubkey or -1
func (m *Message) signerIndex(pubkey common.Pubkey) int {
	for i, key := range m.SignerKeys() {
		if key == pubkey {
			return i
		}
	}
	return -1
}

// messageReader walks the wire form, failing with ErrMalformedMessage on short input
type messageReader struct {
	data []byte
	pos  int
}

func (r *messageReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: unexpected end of data", ErrMalformedMessage)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *messageReader) readBytes(n int) ([]byte, error) {
	if n > len(r.data)-r.pos {
		return nil, fmt.Errorf(
			"%w: need %d bytes at offset %d, have %d",
			ErrMalformedMessage,
			n,
			r.pos,
			len(r.data)-r.pos,
		)
	}
	ret := r.data[r.pos : r.pos+n]
	r.pos += n
	return ret, nil
}

func (r *messageReader) readLen() (int, error) {
	n, size, err := shortvec.Decode(r.data[r.pos:])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	r.pos += size
	return n, nil
}

func decodeMessage(data []byte) (*Message, int, error) {
	r := &messageReader{data: data}
	header, err := r.readBytes(MessageHeaderSize)
	if err != nil {
		return nil, 0, err
	}
	if header[0]&versionPrefixMask != 0 {
		return nil, 0, fmt.Errorf(
			"%w: versioned messages are not supported",
			ErrMalformedMessage,
		)
	}
	msg := &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       header[0],
			NumReadonlySignedAccounts:   header[1],
			NumReadonlyUnsignedAccounts: header[2],
		},
	}
	numKeys, err := r.readLen()
	if err != nil {
		return nil, 0, err
	}
	if numKeys > MaxAccounts {
		return nil, 0, fmt.Errorf(
			"%w: %d account keys",
			ErrMalformedMessage,
			numKeys,
		)
	}
	msg.AccountKeys = make([]common.Pubkey, numKeys)
	for i := range numKeys {
		keyBytes, err := r.readBytes(common.PubkeySize)
		if err != nil {
			return nil, 0, err
		}
		copy(msg.AccountKeys[i][:], keyBytes)
	}
	blockhash, err := r.readBytes(common.HashSize)
	if err != nil {
		return nil, 0, err
	}
	copy(msg.RecentBlockhash[:], blockhash)
	numInstructions, err := r.readLen()
	if err != nil {
		return nil, 0, err
	}
	for range numInstructions {
		var instr CompiledInstruction
		if instr.ProgramIdIndex, err = r.readByte(); err != nil {
			return nil, 0, err
		}
		numAccounts, err := r.readLen()
		if err != nil {
			return nil, 0, err
		}
		accounts, err := r.readBytes(numAccounts)
		if err != nil {
			return nil, 0, err
		}
		instr.Accounts = slices.Clone(accounts)
		dataLen, err := r.readLen()
		if err != nil {
			return nil, 0, err
		}
		instrData, err := r.readBytes(dataLen)
		if err != nil {
			return nil, 0, err
		}
		instr.Data = slices.Clone(instrData)
		msg.Instructions = append(msg.Instructions, instr)
	}
	if err := msg.sanitize(); err != nil {
		return nil, 0, err
	}
	return msg, r.pos, nil
}

// sanitize checks the header and instruction indexes against the account table.
// Keys are unique and the payer is a writable signer that no instruction
// invokes as a program.
func (m *Message) sanitize() error {
	numKeys := len(m.AccountKeys)
	h := m.Header
	if h.NumRequiredSignatures == 0 {
		return fmt.Errorf("%w: no required signers", ErrMalformedMessage)
	}
	if int(h.NumRequiredSignatures)+int(h.NumReadonlyUnsignedAccounts) > numKeys {
		return fmt.Errorf(
			"%w: header requires more accounts than the %d present",
			ErrMalformedMessage,
			numKeys,
		)
	}
	if h.NumReadonlySignedAccounts >= h.NumRequiredSignatures {
		return fmt.Errorf(
			"%w: %d read-only signers leave no writable payer among %d signers",
			ErrMalformedMessage,
			h.NumReadonlySignedAccounts,
			h.NumRequiredSignatures,
		)
	}
	seen := make(map[common.Pubkey]int, numKeys)
	for i, key := range m.AccountKeys {
		if prev, ok := seen[key]; ok {
			return fmt.Errorf(
				"%w: account %s appears at indexes %d and %d",
				ErrMalformedMessage,
				key,
				prev,
				i,
			)
		}
		seen[key] = i
	}
	for i, instr := range m.Instructions {
		if instr.ProgramIdIndex == 0 {
			return fmt.Errorf(
				"%w: instruction %d invokes the payer as a program",
				ErrMalformedMessage,
				i,
			)
		}
		if int(instr.ProgramIdIndex) >= numKeys {
			return fmt.Errorf(
				"%w: instruction %d program index %d out of range",
				ErrMalformedMessage,
				i,
				instr.ProgramIdIndex,
			)
		}
		for _, idx := range instr.Accounts {
			if int(idx) >= numKeys {
				return fmt.Errorf(
					"%w: instruction %d account index %d out of range",
					ErrMalformedMessage,
					i,
					idx,
				)
			}
		}
	}
	return nil
}
