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
	"os"
	"strings"

	liberr "github.com/nabbar/ttcn-runtime/errors"
	"github.com/spf13/viper"
)

// Default returns a RuntimeConfig populated with the same defaults the
// transport layer falls back to when a setting is omitted: an inert
// mapping, SOMAXCONN-sized backlog (expressed as 0, resolved by the
// listener), and no TLS/SCTP overrides.
func Default() RuntimeConfig {
	return RuntimeConfig{
		Control: ControlConfig{
			SocketPerm: 0600,
		},
		Network: NetworkConfig{
			MapProtocol:  "tcp",
			MaxNumOfPoll: 32,
		},
		SCTP: SCTPConfig{
			Stack:            "kernel",
			InitNumOstreams:  10,
			InitMaxInstreams: 10,
			InitMaxAttempts:  4,
		},
	}
}

// Load reads a configuration file (format inferred from its extension)
// through viper, overlays environment variables prefixed with envPrefix
// (e.g. "MCTR_NETWORK_MAPPROTOCOL" for Network.MapProtocol when envPrefix
// is "MCTR"), decodes the result onto a copy of Default, and validates
// it before returning.
func Load(path string, envPrefix string) (RuntimeConfig, liberr.Error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)

	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if _, er := os.Stat(path); er != nil {
		return cfg, ErrorFileNotFound.Error(er)
	}

	if er := v.ReadInConfig(); er != nil {
		return cfg, ErrorFileRead.Error(er)
	}

	if er := v.Unmarshal(&cfg); er != nil {
		return cfg, ErrorUnmarshal.Error(er)
	}

	if e := cfg.Validate(); e != nil {
		return cfg, e
	}

	return cfg, nil
}
