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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
	"github.com/wso2/identity-consent-manager/internal/system/config"
	"github.com/wso2/identity-consent-manager/internal/system/constants"
	"github.com/wso2/identity-consent-manager/internal/system/log"
	"github.com/wso2/identity-consent-manager/internal/system/managers"
	"github.com/wso2/identity-consent-manager/internal/system/security"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	consentHome := getConsentHome()
	logger := log.GetLogger()

	envFiles, err := filepath.Glob(filepath.Join(consentHome, "config", "*.env"))
	if err != nil || len(envFiles) == 0 {
		logger.Warn("No .env files found in config directory")
	} else if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("Failed to load .env files", log.Error(err))
	}

	// Load the configuration file
	consentConfig, err := config.LoadConfig(consentHome, configFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", log.Error(err))
	}

	// Initialize runtime configurations.
	if err := config.InitializeConsentRuntime(consentHome, consentConfig); err != nil {
		logger.Fatal("Failed to initialize consent runtime", log.Error(err))
	}

	// Initialize logger
	if err := log.InitWithFormat(consentConfig.Log.LogLevel, consentConfig.Log.Format); err != nil {
		logger.Fatal("Failed to initialize logger", log.Error(err))
	}
	logger = log.GetLogger()

	categoryRegistry, err := loadRegistry(consentHome, consentConfig.Consent.CatalogFile)
	if err != nil {
		logger.Fatal("Failed to load consent catalog", log.Error(err))
	}

	consentStore, closeStore, err := store.NewConsentStateStore(consentHome, *consentConfig)
	if err != nil {
		logger.Fatal("Failed to initialize consent state store", log.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close consent state store", log.Error(err))
		}
	}()

	mux, err := initMultiplexer(categoryRegistry, consentStore, consentConfig.Consent)
	if err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}
	handler := security.WithTraceID(security.EnableCORS(consentConfig.CORS.AllowedOrigins, mux))

	serverAddr := fmt.Sprintf("%s:%d", consentConfig.Addr.Host, consentConfig.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.String("address", serverAddr), log.Error(err))
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server gracefully", log.Error(err))
		}
	}()

	logger.Info("WSO2 consent manager started", log.String("address", serverAddr),
		log.String("store", consentConfig.Store.Type))
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to serve requests", log.Error(err))
	}
	logger.Info("WSO2 consent manager stopped")
}

// loadRegistry builds the category registry from catalogFile, or the stock catalog when none is configured.
func loadRegistry(consentHome, catalogFile string) (registry.ConsentCategoryRegistryInterface, error) {
	if catalogFile == "" {
		log.GetLogger().Info("No consent catalog configured, using the default categories")
		return registry.NewDefaultRegistry(), nil
	}
	return registry.LoadCatalog(consentHome, catalogFile)
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(categoryRegistry registry.ConsentCategoryRegistryInterface, consentStore store.ConsentStateStoreInterface,
	consentConfig config.ConsentConfig) (*http.ServeMux, error) {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, categoryRegistry, consentStore, consentConfig)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		return nil, err
	}
	return mux, nil
}

func getConsentHome() string {

	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("consentHome", "", "Path to consent manager home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		log.GetLogger().Info("Using consent home from command line argument", log.String("path", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			log.GetLogger().Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}
