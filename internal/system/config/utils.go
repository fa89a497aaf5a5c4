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

import (
	"os"
	"path"

	"github.com/wso2/identity-consent-manager/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the deployment file relative to consentHome, expands environment
// variables and fills unset values with defaults.
func LoadConfig(consentHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(consentHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills zero values with the built-in defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Addr.Port == 0 {
		cfg.Addr.Port = constants.DefaultPort
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.Consent.StorageKey == "" {
		cfg.Consent.StorageKey = constants.ConsentStateStorageKey
	}
	if cfg.Consent.WaitForUpdateMs == nil || *cfg.Consent.WaitForUpdateMs < 0 {
		wait := constants.DefaultWaitForUpdateMs
		cfg.Consent.WaitForUpdateMs = &wait
	}
	if cfg.Consent.BannerDelayMs <= 0 {
		cfg.Consent.BannerDelayMs = constants.DefaultBannerDelayMs
	}
	if cfg.Consent.VisitorCookie == "" {
		cfg.Consent.VisitorCookie = constants.VisitorCookieName
	}
	if cfg.Consent.VisitorCookieMaxAgeDay <= 0 {
		cfg.Consent.VisitorCookieMaxAgeDay = constants.DefaultVisitorCookieMaxAgeDays
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = constants.StoreTypeMemory
	}
	if cfg.Store.MemoryTTLDays <= 0 {
		cfg.Store.MemoryTTLDays = constants.DefaultVisitorCookieMaxAgeDays
	}
	if cfg.MongoDB.Collection == "" {
		cfg.MongoDB.Collection = constants.DefaultMongoCollection
	}
}

// OverrideConsentRuntime replaces the runtime configuration. Used by tests.
func OverrideConsentRuntime(conf Config) {
	runtimeConfig = &ConsentRuntime{
		Config: conf,
	}
}
