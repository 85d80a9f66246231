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
	"fmt"
	"os"
	"strconv"

	libval "github.com/go-playground/validator/v10"
	liberr "github.com/nabbar/ttcn-runtime/errors"
)

// Validate checks the struct constraints declared on RuntimeConfig and its
// nested sections, then applies the cross-field rules that a tag alone
// cannot express: role validity and, when the component acts as an
// SCTP peer, that the TLS section carries at least one certificate if
// MapProtocol is "tls".
func (c *RuntimeConfig) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if c == nil {
		return ErrorParamsEmpty.Error(nil)
	}

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				//nolint goerr113
				err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		}
	}

	if !c.Role.Valid() {
		err.Add(ErrorRoleUnknown.Error(nil))
	}

	if c.Network.MapProtocol == "tls" && len(c.TLS.Certs) == 0 && !c.Network.TLSCertPerConn {
		//nolint goerr113
		err.Add(fmt.Errorf("config field 'RuntimeConfig.TLS.Certs' is required when network.mapProtocol is 'tls'"))
	}

	if err.HasParent() {
		return err
	}

	return nil
}

func defaultSocketDir() string {
	return os.TempDir()
}

func portString(p uint16) string {
	return strconv.FormatUint(uint64(p), 10)
}
