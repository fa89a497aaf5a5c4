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

package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wso2/identity-consent-manager/internal/system/database/provider"
	"github.com/wso2/identity-consent-manager/internal/system/database/scripts"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/log"
	_ "modernc.org/sqlite"
)

// SQLStore persists consent states in a consent_states table.
type SQLStore struct {
	dbProvider provider.DBProviderInterface
	dialect    string
	now        func() time.Time
}

// NewPostgresStore creates a store over the postgres pool of dbProvider and ensures the table exists.
func NewPostgresStore(dbProvider provider.DBProviderInterface) (*SQLStore, error) {
	return newSQLStore(dbProvider, scripts.DialectPostgres)
}

// OpenSQLiteStore opens (or creates) a SQLite database file and ensures the table exists.
func OpenSQLiteStore(path string) (*SQLStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, storeInitError("SQLite path is required.", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storeInitError(fmt.Sprintf("Failed to create sqlite directory for: %s", path), err)
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storeInitError(fmt.Sprintf("Failed to open sqlite database: %s", path), err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, storeInitError(fmt.Sprintf("Failed to ping sqlite database: %s", path), err)
	}
	return newSQLStore(provider.NewDBProviderWithDB(db), scripts.DialectSQLite)
}

func newSQLStore(dbProvider provider.DBProviderInterface, dialect string) (*SQLStore, error) {
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		return nil, storeInitError("Failed to get db client for consent state store.", err)
	}
	if _, err := dbClient.Execute(scripts.CreateConsentStateTable[dialect]); err != nil {
		return nil, storeInitError("Failed to create consent_states table.", err)
	}
	return &SQLStore{dbProvider: dbProvider, dialect: dialect, now: time.Now}, nil
}

// Close releases the underlying pool.
func (s *SQLStore) Close() error {
	return s.dbProvider.Close()
}

// GetConsentState fetches the serialized state stored under key.
func (s *SQLStore) GetConsentState(key string) ([]byte, error) {

	dbClient, err := s.dbProvider.GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching consent state: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_STATE.Code,
			Message:     errors2.FETCH_CONSENT_STATE.Message,
			Description: errorMsg,
		}, err)
	}

	results, err := dbClient.ExecuteQuery(scripts.GetConsentState[s.dialect], key)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching consent state: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_STATE.Code,
			Message:     errors2.FETCH_CONSENT_STATE.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("Consent state not found for key: %s", key))
		return nil, nil
	}

	switch v := results[0]["consent_value"].(type) {
	case []byte:
		return append([]byte(nil), v...), nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_STATE.Code,
			Message:     errors2.FETCH_CONSENT_STATE.Message,
			Description: fmt.Sprintf("Unexpected column type %T for consent state: %s", v, key),
		}, nil)
	}
}

// SaveConsentState overwrites the state stored under key.
func (s *SQLStore) SaveConsentState(key string, value []byte) error {

	dbClient, err := s.dbProvider.GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for saving consent state: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return saveError(errorMsg, err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for saving consent state: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return saveError(errorMsg, err)
	}

	_, err = tx.Exec(scripts.UpsertConsentState[s.dialect], key, string(value), s.now().UnixMilli())
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			errorMsg := fmt.Sprintf("Failed to rollback saving consent state: %s", key)
			logger.Debug(errorMsg, log.Error(errRollback))
			return saveError(errorMsg, errRollback)
		}
		errorMsg := fmt.Sprintf("Failed to execute query for saving consent state: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return saveError(errorMsg, err)
	}
	if err := tx.Commit(); err != nil {
		return saveError(fmt.Sprintf("Failed to commit consent state: %s", key), err)
	}
	logger.Debug(fmt.Sprintf("Successfully saved consent state: %s", key))
	return nil
}

func saveError(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.SAVE_CONSENT_STATE.Code,
		Message:     errors2.SAVE_CONSENT_STATE.Message,
		Description: description,
	}, cause)
}

func storeInitError(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.STORE_INIT.Code,
		Message:     errors2.STORE_INIT.Message,
		Description: description,
	}, cause)
}
