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

package services

import (
	"net/http"
	"strings"

	"github.com/wso2/identity-consent-manager/internal/consent_state/handler"
	"github.com/wso2/identity-consent-manager/internal/consent_state/provider"
	"github.com/wso2/identity-consent-manager/internal/system/config"
)

type ConsentStateService struct {
	handler *handler.ConsentStateHandler
}

func NewConsentStateService(consentProvider provider.ConsentStateProviderInterface,
	consentConfig config.ConsentConfig) *ConsentStateService {

	return &ConsentStateService{
		handler: handler.NewConsentStateHandler(consentProvider, consentConfig),
	}
}

// Route dispatches the visitor consent requests.
func (s *ConsentStateService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && path == "/consent":
		s.handler.GetConsentState(w, r)

	case method == http.MethodPost && path == "/consent/accept-all":
		s.handler.AcceptAll(w, r)

	case method == http.MethodPost && path == "/consent/reject-all":
		s.handler.RejectAll(w, r)

	case method == http.MethodPut && path == "/consent/preferences":
		s.handler.UpdatePreferences(w, r)

	default:
		http.NotFound(w, r)
	}
}
