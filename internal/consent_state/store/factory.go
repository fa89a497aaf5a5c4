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
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/wso2/identity-consent-manager/internal/system/config"
	"github.com/wso2/identity-consent-manager/internal/system/constants"
	"github.com/wso2/identity-consent-manager/internal/system/database/provider"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/log"
)

const memoryJanitorInterval = time.Hour

// CloseFunc releases the resources held by a store.
type CloseFunc func() error

func noopClose() error { return nil }

// NewConsentStateStore builds the store selected by the store section of cfg.
// Relative sqlite paths resolve against consentHome.
func NewConsentStateStore(consentHome string, cfg config.Config) (ConsentStateStoreInterface, CloseFunc, error) {

	logger := log.GetLogger()
	storeType := strings.ToLower(strings.TrimSpace(cfg.Store.Type))

	switch storeType {
	case "", constants.StoreTypeMemory:
		ttl := time.Duration(cfg.Store.MemoryTTLDays) * 24 * time.Hour
		logger.Info("Using in-memory consent state store", log.Int("ttl_days", cfg.Store.MemoryTTLDays))
		memoryStore := NewMemoryStore(ttl)
		if ttl <= 0 {
			return memoryStore, noopClose, nil
		}
		return memoryStore, memoryStore.StartJanitor(memoryJanitorInterval), nil

	case constants.StoreTypeSQLite:
		path := cfg.Store.SQLitePath
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(consentHome, path)
		}
		sqliteStore, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using sqlite consent state store", log.String("path", path))
		return sqliteStore, sqliteStore.Close, nil

	case constants.StoreTypePostgres:
		postgresStore, err := NewPostgresStore(provider.NewDBProvider())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using postgres consent state store",
			log.String("host", cfg.DataSource.Hostname), log.String("database", cfg.DataSource.Name))
		return postgresStore, postgresStore.Close, nil

	case constants.StoreTypeMongoDB:
		mongoStore, err := NewMongoStore(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using mongodb consent state store",
			log.String("database", cfg.MongoDB.Database), log.String("collection", cfg.MongoDB.Collection))
		return mongoStore, mongoStore.Close, nil

	default:
		return nil, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.STORE_INIT.Code,
			Message:     errors2.STORE_INIT.Message,
			Description: fmt.Sprintf("Unsupported consent state store type: %s", cfg.Store.Type),
		}, http.StatusBadRequest)
	}
}
