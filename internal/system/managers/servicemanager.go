/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package managers

import (
	"net/http"
	"strings"

	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/provider"
	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
	"github.com/wso2/identity-consent-manager/internal/system/config"
	"github.com/wso2/identity-consent-manager/internal/system/security"
	"github.com/wso2/identity-consent-manager/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux      *http.ServeMux
	registry registry.ConsentCategoryRegistryInterface
	store    store.ConsentStateStoreInterface
	config   config.ConsentConfig
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, reg registry.ConsentCategoryRegistryInterface,
	consentStore store.ConsentStateStoreInterface, consentConfig config.ConsentConfig) ServiceManagerInterface {

	return &ServiceManager{
		mux:      mux,
		registry: reg,
		store:    consentStore,
		config:   consentConfig,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	healthService := services.NewHealthService(sm.store)
	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)

	consentProvider := provider.NewConsentStateProvider(sm.registry, sm.store, sm.config)
	categoryService := services.NewConsentCategoryService(sm.registry)
	consentService := services.NewConsentStateService(consentProvider, sm.config)
	visitorConsent := security.WithVisitor(sm.config.VisitorCookie, sm.config.VisitorCookieMaxAgeDay,
		http.HandlerFunc(consentService.Route))

	// Single dispatcher for the API, relative to apiBasePath
	dispatcher := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		switch {
		case strings.HasPrefix(path, "/consent-categories"):
			categoryService.Route(w, r)
		case path == "/consent" || strings.HasPrefix(path, "/consent/"):
			visitorConsent.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	sm.mux.Handle(apiBasePath+"/", http.StripPrefix(apiBasePath, dispatcher))
	return nil
}
