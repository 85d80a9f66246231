/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package netproto

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func (p *NetworkProtocol) unmarshall(val []byte) error {
	*p = ParseBytes(val)
	return nil
}

func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *NetworkProtocol) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	return p.unmarshall([]byte(s))
}

func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	return p.unmarshall([]byte(value.Value))
}

func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte("\"" + p.String() + "\""), nil
}

func (p *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	if b, k := i.([]byte); k {
		return p.unmarshall(b)
	}
	if s, k := i.(string); k {
		return p.unmarshall([]byte(s))
	}
	return fmt.Errorf("network protocol: value not in valid format")
}

func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.String())
}

func (p *NetworkProtocol) UnmarshalCBOR(bytes []byte) error {
	var s string
	if err := cbor.Unmarshal(bytes, &s); err != nil {
		return err
	}
	*p = Parse(s)
	return nil
}
