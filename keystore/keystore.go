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

// Package keystore stores named signing keypairs in a LevelDB database
package keystore

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/pacanele/solkit/common"
	"github.com/pacanele/solkit/keypair"
)

const (
	keyPrefix = "keypair/"

	// MaxNameLen bounds the length of a keypair name
	MaxNameLen = 64
)

var (
	ErrNotFound     = errors.New("keystore: keypair not found")
	ErrExists       = errors.New("keystore: keypair name already in use")
	ErrInvalidName  = errors.New("keystore: invalid keypair name")
	ErrCorruptEntry = errors.New("keystore: stored keypair is corrupt")
)

// Entry describes a stored keypair without loading its secret
type Entry struct {
	Name   string
	Pubkey common.Pubkey
}

// Keystore is safe for concurrent use
type Keystore struct {
	db     *leveldb.DB
	logger *slog.Logger
	mutex  sync.Mutex
}

// OptionFunc is a type that represents functions that modify the Keystore config
type OptionFunc func(*Keystore)

// WithLogger specifies the logger to use. This defaults to slog.Default()
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(k *Keystore) {
		k.logger = logger
	}
}

// Open opens or creates the keystore database at path
func Open(path string, opts ...OptionFunc) (*Keystore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open keystore %s: %w", path, err)
	}
	k := newKeystore(db, opts...)
	k.logger.Debug(
		"opened keystore",
		"component", "keystore",
		"path", path,
	)
	return k, nil
}

// OpenMemory returns a keystore that is discarded when closed
func OpenMemory(opts ...OptionFunc) (*Keystore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newKeystore(db, opts...), nil
}

func newKeystore(db *leveldb.DB, opts ...OptionFunc) *Keystore {
	k := &Keystore{db: db}
	for _, optFunc := range opts {
		optFunc(k)
	}
	if k.logger == nil {
		k.logger = slog.Default()
	}
	return k
}

func (k *Keystore) Close() error {
	return k.db.Close()
}

func validateName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf(
			"%w: must be 1 to %d bytes",
			ErrInvalidName,
			MaxNameLen,
		)
	}
	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidName, name)
	}
	return nil
}

func dbKey(name string) []byte {
	return []byte(keyPrefix + name)
}

// Put stores the keypair under a new name
func (k *Keystore) Put(name string, kp *keypair.Keypair) error {
	if err := validateName(name); err != nil {
		return err
	}
	if kp.IsZeroized() {
		return keypair.ErrZeroized
	}
	k.mutex.Lock()
	defer k.mutex.Unlock()
	exists, err := k.db.Has(dbKey(name), nil)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	data := kp.ToBytes()
	defer clear(data)
	if err := k.db.Put(dbKey(name), data, &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}
	k.logger.Debug(
		"stored keypair",
		"component", "keystore",
		"name", name,
		"pubkey", kp.Pubkey().String(),
	)
	return nil
}

// Get loads the named keypair. The caller should Zeroize it when done.
func (k *Keystore) Get(name string) (*keypair.Keypair, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := k.db.Get(dbKey(name), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer clear(data)
	kp, err := keypair.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptEntry, name, err)
	}
	return kp, nil
}

// Delete removes the named keypair
func (k *Keystore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	k.mutex.Lock()
	defer k.mutex.Unlock()
	exists, err := k.db.Has(dbKey(name), nil)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := k.db.Delete(dbKey(name), &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}
	k.logger.Debug(
		"deleted keypair",
		"component", "keystore",
		"name", name,
	)
	return nil
}

// List returns every stored keypair sorted by name
func (k *Keystore) List() ([]Entry, error) {
	iter := k.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()
	var ret []Entry
	for iter.Next() {
		name := strings.TrimPrefix(string(iter.Key()), keyPrefix)
		value := iter.Value()
		if len(value) != keypair.KeypairSize {
			return nil, fmt.Errorf(
				"%w: %s: %d bytes",
				ErrCorruptEntry,
				name,
				len(value),
			)
		}
		pubkey, err := common.NewPubkeyFromBytes(value[keypair.SeedSize:])
		if err != nil {
			return nil, err
		}
		ret = append(ret, Entry{Name: name, Pubkey: pubkey})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return ret, nil
}
