/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package config_test

import (
	"encoding/json"

	"github.com/nabbar/ttcn-runtime/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Role", func() {
	DescribeTable("Parse recognizes short and long forms",
		func(input string, expected config.Role) {
			Expect(config.Parse(input)).To(Equal(expected))
		},
		Entry("short HC", "HC", config.RoleHC),
		Entry("lowercase hc", "hc", config.RoleHC),
		Entry("long host controller", "host-controller", config.RoleHC),
		Entry("short MTC", "mtc", config.RoleMTC),
		Entry("long main test component", "main_test_component", config.RoleMTC),
		Entry("short PTC", "PTC", config.RolePTC),
		Entry("long parallel test component", "parallel test component", config.RolePTC),
		Entry("garbage", "nonsense", config.RoleUnknown),
		Entry("empty", "", config.RoleUnknown),
	)

	It("round-trips through String and Parse", func() {
		for _, r := range config.List() {
			Expect(config.Parse(r.String())).To(Equal(r))
		}
	})

	It("reports Valid only for known roles", func() {
		Expect(config.RoleHC.Valid()).To(BeTrue())
		Expect(config.RoleMTC.Valid()).To(BeTrue())
		Expect(config.RolePTC.Valid()).To(BeTrue())
		Expect(config.RoleUnknown.Valid()).To(BeFalse())
	})

	It("marshals to and from JSON as its string form", func() {
		b, err := json.Marshal(config.RoleMTC)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`"MTC"`))

		var r config.Role
		Expect(json.Unmarshal(b, &r)).To(Succeed())
		Expect(r).To(Equal(config.RoleMTC))
	})
})
