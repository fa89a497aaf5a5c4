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
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/service"
	"github.com/wso2/identity-consent-manager/internal/consent_state/sink"
	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
	"github.com/wso2/identity-consent-manager/internal/system/config"
)

// ConsentStateProviderInterface defines the interface for the consent state provider.
type ConsentStateProviderInterface interface {
	GetConsentCategoryRegistry() registry.ConsentCategoryRegistryInterface
	GetConsentStateEngine(visitorId string, consentSink sink.ConsentSinkInterface) (service.ConsentStateEngineInterface, error)
}

// ConsentStateProvider builds one engine per visitor over a shared store.
type ConsentStateProvider struct {
	registry registry.ConsentCategoryRegistryInterface
	store    store.ConsentStateStoreInterface
	config   config.ConsentConfig
}

// NewConsentStateProvider creates a new instance of ConsentStateProvider.
func NewConsentStateProvider(reg registry.ConsentCategoryRegistryInterface, baseStore store.ConsentStateStoreInterface,
	consentConfig config.ConsentConfig) ConsentStateProviderInterface {

	return &ConsentStateProvider{
		registry: reg,
		store:    baseStore,
		config:   consentConfig,
	}
}

// GetConsentCategoryRegistry returns the category registry shared by every engine.
func (p *ConsentStateProvider) GetConsentCategoryRegistry() registry.ConsentCategoryRegistryInterface {
	return p.registry
}

// GetConsentStateEngine returns an uninitialized engine whose storage key is scoped to visitorId.
func (p *ConsentStateProvider) GetConsentStateEngine(visitorId string,
	consentSink sink.ConsentSinkInterface) (service.ConsentStateEngineInterface, error) {

	visitorStore, err := store.NewVisitorScopedStore(visitorId, p.store)
	if err != nil {
		return nil, err
	}
	return service.NewConsentStateEngine(p.registry, visitorStore, consentSink, service.EngineConfig{
		StorageKey:      p.config.StorageKey,
		WaitForUpdateMs: p.config.WaitForUpdateMs,
		SubjectID:       visitorId,
	}), nil
}
