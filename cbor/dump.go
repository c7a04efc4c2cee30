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

package cbor

import (
	"fmt"
	"strings"
)

// Dump decodes arbitrary CBOR and renders its structure as indented text
func Dump(data []byte) (string, error) {
	var tmp any
	if err := DecodeExact(data, &tmp); err != nil {
		return "", err
	}
	return DumpStructure(tmp, ""), nil
}

// DumpStructure renders a decoded CBOR value, indenting nested arrays and maps
func DumpStructure(data any, prefix string) string {
	var ret strings.Builder
	switch v := data.(type) {
	case []any:
		ret.WriteString(prefix + "[\n")
		for _, val := range v {
			ret.WriteString(DumpStructure(val, prefix+"  "))
		}
		ret.WriteString(prefix + "],\n")
	case map[any]any:
		ret.WriteString(prefix + "{\n")
		for key, val := range v {
			fmt.Fprintf(&ret, "%s  %#v => %#v,\n", prefix, key, val)
		}
		ret.WriteString(prefix + "}\n")
	case []byte:
		fmt.Fprintf(&ret, "%sh'%x',\n", prefix, v)
	default:
		fmt.Fprintf(&ret, "%s%#v,\n", prefix, v)
	}
	return ret.String()
}
