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

package provider

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"github.com/wso2/identity-consent-manager/internal/system/config"
	"github.com/wso2/identity-consent-manager/internal/system/database/client"
	"github.com/wso2/identity-consent-manager/internal/system/errors"
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	Close() error
}

// DBProvider hands out clients over one shared connection pool.
type DBProvider struct {
	mu sync.Mutex
	db *sql.DB
}

// NewDBProvider creates a provider that opens the pool from the runtime datasource config on first use.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// NewDBProviderWithDB creates a provider over an already opened pool.
func NewDBProviderWithDB(db *sql.DB) DBProviderInterface {

	return &DBProvider{db: db}
}

// GetDBClient returns a database client over the shared pool.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		runtimeConfig := config.GetConsentRuntime().Config
		dbConfig := getDBConfig(runtimeConfig)

		db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
		if err != nil {
			return nil, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.DB_CLIENT_INIT.Code,
				Message:     errors.DB_CLIENT_INIT.Message,
				Description: "Failed to open the database connection pool.",
			}, err)
		}

		// Test the database connection.
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.DB_CLIENT_INIT.Code,
				Message:     errors.DB_CLIENT_INIT.Message,
				Description: "Failed to ping the database.",
			}, err)
		}
		d.db = db
	}

	return client.NewDBClient(d.db), nil
}

// Close closes the shared pool.
func (d *DBProvider) Close() error {

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(dataSource config.Config) DBConfig {

	var dbConfig DBConfig

	dbConfig.driverName = "postgres"
	dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dataSource.DataSource.Hostname, dataSource.DataSource.Port, dataSource.DataSource.Username, dataSource.DataSource.Password,
		dataSource.DataSource.Name, dataSource.DataSource.SSLMode)

	return dbConfig
}
