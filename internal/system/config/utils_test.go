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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ShippedDeploymentFile(t *testing.T) {
	t.Setenv("CONSENT_LOG_LEVEL", "DEBUG")
	t.Setenv("CONSENT_STORE_TYPE", "sqlite")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := LoadConfig("../../..", "repository/conf/deployment.yaml")
	require.NoError(t, err)

	assert.Equal(t, 8900, cfg.Addr.Port)
	assert.Equal(t, "DEBUG", cfg.Log.LogLevel)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "db.internal", cfg.DataSource.Hostname)
	assert.Equal(t, "consent_state", cfg.Consent.StorageKey)
	require.NotNil(t, cfg.Consent.WaitForUpdateMs)
	assert.Equal(t, 500, *cfg.Consent.WaitForUpdateMs)
	assert.Equal(t, "repository/conf/consent_categories.yaml", cfg.Consent.CatalogFile)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "deployment.yaml"), []byte("addr:\n  host: \"localhost\"\n"), 0o600))

	cfg, err := LoadConfig(home, "deployment.yaml")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Addr.Host)
	assert.Equal(t, 8900, cfg.Addr.Port)
	assert.Equal(t, "INFO", cfg.Log.LogLevel)
	assert.Equal(t, "consent_state", cfg.Consent.StorageKey)
	require.NotNil(t, cfg.Consent.WaitForUpdateMs)
	assert.Equal(t, 500, *cfg.Consent.WaitForUpdateMs)
	assert.Equal(t, 1000, cfg.Consent.BannerDelayMs)
	assert.Equal(t, "consent_visitor_id", cfg.Consent.VisitorCookie)
	assert.Equal(t, 395, cfg.Consent.VisitorCookieMaxAgeDay)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, "consent_states", cfg.MongoDB.Collection)
}

func TestLoadConfig_WaitForUpdate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected int
	}{
		{"explicit zero is kept", "consent:\n  wait_for_update_ms: 0\n", 0},
		{"positive value is kept", "consent:\n  wait_for_update_ms: 750\n", 750},
		{"negative falls back", "consent:\n  wait_for_update_ms: -1\n", 500},
		{"unset falls back", "consent:\n  storage_key: \"cs\"\n", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(home, "deployment.yaml"), []byte(tt.yaml), 0o600))

			cfg, err := LoadConfig(home, "deployment.yaml")
			require.NoError(t, err)

			require.NotNil(t, cfg.Consent.WaitForUpdateMs)
			assert.Equal(t, tt.expected, *cfg.Consent.WaitForUpdateMs)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), "deployment.yaml")
	assert.Error(t, err)
}

func TestOverrideConsentRuntime(t *testing.T) {
	OverrideConsentRuntime(Config{Store: StoreConfig{Type: "mongodb"}})

	assert.Equal(t, "mongodb", GetConsentRuntime().Config.Store.Type)
}
