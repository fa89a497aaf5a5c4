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

package scripts

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var CreateConsentStateTable = map[string]string{
	DialectPostgres: `CREATE TABLE IF NOT EXISTS consent_states (
		storage_key   VARCHAR(512) PRIMARY KEY,
		consent_value TEXT NOT NULL,
		updated_at    BIGINT NOT NULL)`,
	DialectSQLite: `CREATE TABLE IF NOT EXISTS consent_states (
		storage_key   TEXT PRIMARY KEY,
		consent_value TEXT NOT NULL,
		updated_at    INTEGER NOT NULL)`,
}

var GetConsentState = map[string]string{
	DialectPostgres: `SELECT consent_value FROM consent_states WHERE storage_key = $1`,
	DialectSQLite:   `SELECT consent_value FROM consent_states WHERE storage_key = ?`,
}

var UpsertConsentState = map[string]string{
	DialectPostgres: `INSERT INTO consent_states (storage_key, consent_value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE SET consent_value = EXCLUDED.consent_value, updated_at = EXCLUDED.updated_at`,
	DialectSQLite: `INSERT INTO consent_states (storage_key, consent_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (storage_key) DO UPDATE SET consent_value = excluded.consent_value, updated_at = excluded.updated_at`,
}
