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

// Package cbor wraps github.com/fxamacker/cbor/v2 with the encoding
// conventions used for the out-of-band exchange formats in this module.
//
// Embeddable helpers:
//   - StructAsArray: encode a struct as a CBOR array instead of a map
//   - DecodeStoreCbor: keep the original CBOR bytes of a decoded object so
//     that identifiers can be computed over exactly what was received
package cbor

import (
	"errors"
	"reflect"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Useful for embedding and easier to remember
type StructAsArray struct {
	// Tells the CBOR decoder to convert to/from a struct and a CBOR array
	_ struct{} `cbor:",toarray"`
}

type DecodeStoreCborInterface interface {
	Cbor() []byte
}

type DecodeStoreCbor struct {
	cborData []byte
}

// Cbor returns the original CBOR for the object
func (d *DecodeStoreCbor) Cbor() []byte {
	return d.cborData
}

// SetCbor stores a copy of the provided CBOR data, or clears it when nil
func (d *DecodeStoreCbor) SetCbor(cborData []byte) {
	if cborData == nil {
		d.cborData = nil
		return
	}
	d.cborData = make([]byte, len(cborData))
	copy(d.cborData, cborData)
}

// UnmarshalCborGeneric decodes the specified CBOR into the destination object without using the
// destination object's UnmarshalCBOR() function
func (d *DecodeStoreCbor) UnmarshalCborGeneric(
	cborData []byte,
	dest DecodeStoreCborInterface,
) error {
	// Create a duplicate(-ish) struct from the destination
	// We do this so that we can bypass any custom UnmarshalCBOR() function on the
	// destination object
	valueDest := reflect.ValueOf(dest)
	if valueDest.Kind() != reflect.Pointer ||
		valueDest.Elem().Kind() != reflect.Struct {
		return errors.New("destination must be a pointer to a struct")
	}
	typeDestElem := valueDest.Elem().Type()
	destTypeFields := []reflect.StructField{}
	for i := range typeDestElem.NumField() {
		tmpField := typeDestElem.Field(i)
		if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
			destTypeFields = append(destTypeFields, tmpField)
		}
	}
	// Create temporary object with the type created above
	tmpDest := reflect.New(reflect.StructOf(destTypeFields))
	// Decode CBOR into temporary object
	if _, err := Decode(cborData, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	if err := copier.Copy(dest, tmpDest.Interface()); err != nil {
		return err
	}
	// Store a copy of the original CBOR data
	// This must be done after we copy from the temp object above, or it gets wiped out
	// when using struct embedding and the DecodeStoreCbor struct is embedded at a deeper level
	d.SetCbor(cborData)
	return nil
}
