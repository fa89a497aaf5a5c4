/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

import "sync"

// ConsentRuntime holds the runtime configuration for the consent manager.
type ConsentRuntime struct {
	ConsentHome string `yaml:"consent_home"`
	Config      Config `yaml:"config"`
}

var (
	runtimeConfig *ConsentRuntime
	once          sync.Once
)

// InitializeConsentRuntime initializes the ConsentRuntime configuration.
func InitializeConsentRuntime(consentHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &ConsentRuntime{
			ConsentHome: consentHome,
			Config:      *config,
		}
	})

	return nil
}

// GetConsentRuntime returns the ConsentRuntime configuration.
func GetConsentRuntime() *ConsentRuntime {

	if runtimeConfig == nil {
		panic("ConsentRuntime is not initialized")
	}
	return runtimeConfig
}
