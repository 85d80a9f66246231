/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package config

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func (r *Role) unmarshall(val []byte) error {
	*r = Parse(string(val))
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	return r.unmarshall([]byte(s))
}

func (r Role) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r *Role) UnmarshalYAML(value *yaml.Node) error {
	return r.unmarshall([]byte(value.Value))
}

func (r Role) MarshalTOML() ([]byte, error) {
	return []byte("\"" + r.String() + "\""), nil
}

func (r *Role) UnmarshalTOML(i interface{}) error {
	if p, k := i.([]byte); k {
		return r.unmarshall(p)
	}
	if p, k := i.(string); k {
		return r.unmarshall([]byte(p))
	}
	return fmt.Errorf("config role: value not in valid format")
}

func (r Role) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(r.String())
}

func (r *Role) UnmarshalCBOR(bytes []byte) error {
	var s string
	if err := cbor.Unmarshal(bytes, &s); err != nil {
		return err
	}
	*r = Parse(s)
	return nil
}
