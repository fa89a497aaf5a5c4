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

package services

import (
	"net/http"
	"strings"

	"github.com/wso2/identity-consent-manager/internal/consent_category/handler"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
)

type ConsentCategoryService struct {
	handler *handler.ConsentCategoryHandler
}

func NewConsentCategoryService(reg registry.ConsentCategoryRegistryInterface) *ConsentCategoryService {
	return &ConsentCategoryService{
		handler: handler.NewConsentCategoryHandler(reg),
	}
}

// Route dispatches the read-only catalog requests.
func (s *ConsentCategoryService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && path == "/consent-categories":
		s.handler.GetAllConsentCategories(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/consent-categories/"):
		s.handler.GetConsentCategory(w, r)

	default:
		http.NotFound(w, r)
	}
}
