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

import "strings"

// Role identifies the part a running component plays in the test system:
// the host controller that owns the socket pool and spawns components,
// the main test component that drives a test case, or a parallel test
// component created on demand by the main test component.
type Role int

const (
	// RoleUnknown represents an unrecognized or unset role.
	RoleUnknown Role = iota

	// RoleHC is the host controller: one per physical or virtual host,
	// owns listening sockets and forks component processes.
	RoleHC

	// RoleMTC is the main test component: exactly one per test run,
	// coordinates parallel test components and reports verdicts.
	RoleMTC

	// RolePTC is a parallel test component: created and destroyed on
	// demand by the main test component during a test run.
	RolePTC
)

// List returns every known role, host controller first.
func List() []Role {
	return []Role{
		RoleHC,
		RoleMTC,
		RolePTC,
	}
}

func (r Role) String() string {
	switch r {
	case RoleHC:
		return "HC"
	case RoleMTC:
		return "MTC"
	case RolePTC:
		return "PTC"
	default:
		return ""
	}
}

// Parse returns the Role matching the given string, case-insensitively,
// accepting both the short code ("HC") and the long name ("host-controller").
// It returns RoleUnknown if nothing matches.
func Parse(s string) Role {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)

	switch s {
	case "hc", "hostcontroller":
		return RoleHC
	case "mtc", "maintestcomponent":
		return RoleMTC
	case "ptc", "paralleltestcomponent":
		return RolePTC
	default:
		return RoleUnknown
	}
}

// Valid reports whether the role is one of the known, non-zero roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHC, RoleMTC, RolePTC:
		return true
	default:
		return false
	}
}
