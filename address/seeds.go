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

package address

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pacanele/solkit/common"
)

var ErrUnsupportedSeed = errors.New("unsupported seed type")

// Seeds converts mixed seed values into raw seeds. Strings are used as their
// UTF-8 bytes, pubkeys as their 32 raw bytes, single bytes as themselves and
// unsigned integers as little-endian bytes of their width.
func Seeds(values ...any) ([][]byte, error) {
	ret := make([][]byte, 0, len(values))
	for i, value := range values {
		switch v := value.(type) {
		case string:
			ret = append(ret, []byte(v))
		case []byte:
			ret = append(ret, v)
		case common.Pubkey:
			ret = append(ret, v.Bytes())
		case uint8:
			ret = append(ret, []byte{v})
		case uint16:
			ret = append(ret, binary.LittleEndian.AppendUint16(nil, v))
		case uint32:
			ret = append(ret, binary.LittleEndian.AppendUint32(nil, v))
		case uint64:
			ret = append(ret, binary.LittleEndian.AppendUint64(nil, v))
		default:
			return nil, fmt.Errorf("%w: seed %d is %T", ErrUnsupportedSeed, i, value)
		}
	}
	return ret, nil
}
