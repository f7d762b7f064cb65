/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import (
	"errors"
	"path/filepath"
	"sync"
)

// Runtime is the configuration authctl runs with, anchored to its home directory.
type Runtime struct {
	Home   string `yaml:"home"`
	Config Config `yaml:"config"`
}

// ResolvePath returns p unchanged when it is empty or absolute, otherwise joined to Home.
func (r *Runtime) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Home, p)
}

var (
	runtimeMu     sync.RWMutex
	runtimeConfig *Runtime
)

// InitializeRuntime records the home directory and a copy of cfg. Only the first successful
// call takes effect.
func InitializeRuntime(home string, cfg *Config) error {
	if cfg == nil {
		return errors.New("runtime configuration is nil")
	}
	if home == "" {
		return errors.New("runtime home directory is empty")
	}

	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if runtimeConfig == nil {
		runtimeConfig = &Runtime{Home: home, Config: *cfg}
	}
	return nil
}

// GetRuntime returns the runtime. It panics if InitializeRuntime has not been called.
func GetRuntime() *Runtime {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	if runtimeConfig == nil {
		panic("Runtime is not initialized")
	}
	return runtimeConfig
}

// ResetRuntime clears the runtime. Used by tests.
func ResetRuntime() {
	runtimeMu.Lock()
	runtimeConfig = nil
	runtimeMu.Unlock()
}
