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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
	// Format is text or json.
	Format   string `yaml:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ConsentConfig holds the consent engine and presentation hints.
type ConsentConfig struct {
	StorageKey             string `yaml:"storage_key"`
	// WaitForUpdateMs is a pointer so that an explicit 0 survives ApplyDefaults.
	WaitForUpdateMs        *int   `yaml:"wait_for_update_ms"`
	BannerDelayMs          int    `yaml:"banner_delay_ms"`
	VisitorCookie          string `yaml:"visitor_cookie"`
	VisitorCookieMaxAgeDay int    `yaml:"visitor_cookie_max_age_days"`
	CatalogFile            string `yaml:"catalog_file"`
}

// StoreConfig selects the consent state store. Type is one of memory, sqlite, postgres, mongodb.
type StoreConfig struct {
	Type          string `yaml:"type"`
	MemoryTTLDays int    `yaml:"memory_ttl_days"`
	SQLitePath    string `yaml:"sqlite_path"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Consent    ConsentConfig    `yaml:"consent"`
	Store      StoreConfig      `yaml:"store"`
	DataSource DataSourceConfig `yaml:"datasource"`
	MongoDB    MongoDBConfig    `yaml:"mongodb"`
}
