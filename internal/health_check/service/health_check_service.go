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

package service

import (
	"errors"
	"fmt"

	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
)

const readinessProbeKey = "readiness:probe"

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct {
	store store.ConsentStateStoreInterface
}

// NewHealthCheckService returns a service that probes consentStore.
func NewHealthCheckService(consentStore store.ConsentStateStoreInterface) HealthCheckServiceInterface {
	return &HealthCheckService{store: consentStore}
}

func (h *HealthCheckService) CheckReadiness() error {
	if h.store == nil {
		return errors.New("consent state store not initialized")
	}

	// Perform a lightweight read to ensure store connectivity.
	if _, err := h.store.GetConsentState(readinessProbeKey); err != nil {
		return fmt.Errorf("consent state store check failed: %v", err)
	}
	return nil
}
