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

package handler

import (
	"net/http"
	"strings"

	"github.com/wso2/identity-consent-manager/internal/consent_category/model"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/utils"
)

type ConsentCategoryHandler struct {
	registry registry.ConsentCategoryRegistryInterface
}

func NewConsentCategoryHandler(reg registry.ConsentCategoryRegistryInterface) *ConsentCategoryHandler {
	return &ConsentCategoryHandler{registry: reg}
}

// GetAllConsentCategories handles GET /consent-categories
func (h *ConsentCategoryHandler) GetAllConsentCategories(w http.ResponseWriter, r *http.Request) {

	categories := h.registry.ListCategories()
	response := make([]model.ConsentCategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, category.ToResponse())
	}
	utils.WriteJSON(w, http.StatusOK, response)
}

// GetConsentCategory handles GET /consent-categories/{id}
func (h *ConsentCategoryHandler) GetConsentCategory(w http.ResponseWriter, r *http.Request) {

	categoryId := extractLastPathSegment(r.URL.Path)
	if categoryId == "" || categoryId == "consent-categories" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Category Id is required to fetch the consent category.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	category, err := h.registry.GetCategory(categoryId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, category.ToResponse())
}

func extractLastPathSegment(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
