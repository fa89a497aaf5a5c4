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

package registry

import (
	"fmt"
	"net/http"

	"github.com/wso2/identity-consent-manager/internal/consent_category/model"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
)

// ConsentCategoryRegistryInterface is the read-only view of the consent catalog.
type ConsentCategoryRegistryInterface interface {
	ListCategories() []model.ConsentCategory
	GetCategory(categoryId string) (model.ConsentCategory, error)
	FlagsFor(categoryId string) (model.SignalFlagSet, error)
	RequiredFlags() model.SignalFlagSet
	SignalFlags() []model.SignalFlag
	TogglableCategories() []model.ConsentCategory
}

// ConsentCategoryRegistry is the immutable catalog of consent categories.
type ConsentCategoryRegistry struct {
	categories    []model.ConsentCategory
	index         map[string]int
	requiredFlags model.SignalFlagSet
}

// NewConsentCategoryRegistry validates the catalog and builds a registry from it.
// Categories keep their given order, which is also the display order.
func NewConsentCategoryRegistry(categories []model.ConsentCategory) (*ConsentCategoryRegistry, error) {

	reg := &ConsentCategoryRegistry{
		categories:    make([]model.ConsentCategory, 0, len(categories)),
		index:         make(map[string]int, len(categories)),
		requiredFlags: model.NewSignalFlagSet(),
	}

	hasRequired := false
	for _, category := range categories {
		if category.CategoryIdentifier == "" {
			return nil, invalidCatalog("Consent category identifier is required.")
		}
		if _, exists := reg.index[category.CategoryIdentifier]; exists {
			return nil, invalidCatalog(fmt.Sprintf("Duplicate consent category: %s.", category.CategoryIdentifier))
		}
		for _, flag := range category.SignalFlags {
			if !model.IsKnownSignalFlag(flag) {
				return nil, invalidCatalog(fmt.Sprintf("Unknown signal flag %s in consent category %s.",
					flag, category.CategoryIdentifier))
			}
		}
		if category.Required {
			if len(category.SignalFlags) == 0 {
				return nil, invalidCatalog(fmt.Sprintf("Required consent category %s must control at least one signal flag.",
					category.CategoryIdentifier))
			}
			hasRequired = true
			reg.requiredFlags.Add(category.SignalFlags...)
		}
		reg.index[category.CategoryIdentifier] = len(reg.categories)
		reg.categories = append(reg.categories, category.Clone())
	}

	if !hasRequired {
		return nil, invalidCatalog("At least one consent category must be required.")
	}
	return reg, nil
}

// ListCategories returns every category in display order.
func (r *ConsentCategoryRegistry) ListCategories() []model.ConsentCategory {

	categories := make([]model.ConsentCategory, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category.Clone())
	}
	return categories
}

// GetCategory returns the category with the given identifier.
func (r *ConsentCategoryRegistry) GetCategory(categoryId string) (model.ConsentCategory, error) {

	i, ok := r.index[categoryId]
	if !ok {
		return model.ConsentCategory{}, unknownCategory(categoryId)
	}
	return r.categories[i].Clone(), nil
}

// FlagsFor returns the signal flags controlled by the given category.
func (r *ConsentCategoryRegistry) FlagsFor(categoryId string) (model.SignalFlagSet, error) {

	i, ok := r.index[categoryId]
	if !ok {
		return nil, unknownCategory(categoryId)
	}
	return r.categories[i].FlagSet(), nil
}

// RequiredFlags is the union of flags of all required categories. These are always granted.
func (r *ConsentCategoryRegistry) RequiredFlags() model.SignalFlagSet {

	return r.requiredFlags.Union(nil)
}

// SignalFlags returns every flag a consent state must carry.
func (r *ConsentCategoryRegistry) SignalFlags() []model.SignalFlag {

	return model.AllSignalFlags()
}

// TogglableCategories returns the non-required categories in display order.
func (r *ConsentCategoryRegistry) TogglableCategories() []model.ConsentCategory {

	var categories []model.ConsentCategory
	for _, category := range r.categories {
		if !category.Required {
			categories = append(categories, category.Clone())
		}
	}
	return categories
}

func unknownCategory(categoryId string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UNKNOWN_CONSENT_CATEGORY.Code,
		Message:     errors2.UNKNOWN_CONSENT_CATEGORY.Message,
		Description: fmt.Sprintf("Consent category %s is not defined.", categoryId),
	}, http.StatusNotFound)
}

func invalidCatalog(description string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_CONSENT_CATALOG.Code,
		Message:     errors2.INVALID_CONSENT_CATALOG.Message,
		Description: description,
	}, http.StatusBadRequest)
}
