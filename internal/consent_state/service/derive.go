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

package service

import (
	"fmt"
	"net/http"

	categoryModel "github.com/wso2/identity-consent-manager/internal/consent_category/model"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/model"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
)

// Derive folds a selection into a consent state. Every flag starts denied and the flags of each
// required or selected category are granted. A selection naming an unknown category is rejected.
func Derive(reg registry.ConsentCategoryRegistryInterface, selection model.Selection,
	waitForUpdateMs int) (model.ConsentState, error) {

	for categoryId := range selection {
		if _, err := reg.FlagsFor(categoryId); err != nil {
			return model.ConsentState{}, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_CONSENT_SELECTION.Code,
				Message:     errors2.INVALID_CONSENT_SELECTION.Message,
				Description: fmt.Sprintf("Selection references unknown consent category: %s.", categoryId),
			}, http.StatusBadRequest)
		}
	}

	granted := categoryModel.NewSignalFlagSet()
	for _, category := range reg.ListCategories() {
		if category.Required || selection[category.CategoryIdentifier] {
			granted.Add(category.SignalFlags...)
		}
	}
	return stateFromGranted(reg, granted, waitForUpdateMs), nil
}

// DefaultState is the first-visit and reject-all state: required flags granted, the rest denied.
func DefaultState(reg registry.ConsentCategoryRegistryInterface, waitForUpdateMs int) model.ConsentState {
	return stateFromGranted(reg, reg.RequiredFlags(), waitForUpdateMs)
}

// AcceptAllState grants every registry flag.
func AcceptAllState(reg registry.ConsentCategoryRegistryInterface, waitForUpdateMs int) model.ConsentState {
	return stateFromGranted(reg, categoryModel.NewSignalFlagSet(reg.SignalFlags()...), waitForUpdateMs)
}

func stateFromGranted(reg registry.ConsentCategoryRegistryInterface, granted categoryModel.SignalFlagSet,
	waitForUpdateMs int) model.ConsentState {

	state := model.NewConsentState(reg.SignalFlags(), waitForUpdateMs)
	for flag := range state.Flags {
		if granted.Has(flag) {
			state.Flags[flag] = model.Granted
		}
	}
	return state
}

// isComplete reports whether state carries exactly the registry flags.
func isComplete(reg registry.ConsentCategoryRegistryInterface, state model.ConsentState) bool {
	flags := reg.SignalFlags()
	if len(state.Flags) != len(flags) {
		return false
	}
	for _, flag := range flags {
		if _, ok := state.Flags[flag]; !ok {
			return false
		}
	}
	return true
}
