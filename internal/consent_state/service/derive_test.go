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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	categoryModel "github.com/wso2/identity-consent-manager/internal/consent_category/model"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/model"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
)

// allSelections enumerates every on/off combination of the togglable categories.
func allSelections(reg registry.ConsentCategoryRegistryInterface) []model.Selection {
	togglable := reg.TogglableCategories()
	selections := make([]model.Selection, 0, 1<<len(togglable))
	for mask := 0; mask < 1<<len(togglable); mask++ {
		selection := model.Selection{}
		for i, category := range togglable {
			selection[category.CategoryIdentifier] = mask&(1<<i) != 0
		}
		selections = append(selections, selection)
	}
	return selections
}

func TestDerive_UnionLaw(t *testing.T) {
	reg := registry.NewDefaultRegistry()

	for _, selection := range allSelections(reg) {
		state, err := Derive(reg, selection, 500)
		require.NoError(t, err)

		expected := categoryModel.NewSignalFlagSet()
		for _, category := range reg.ListCategories() {
			if category.Required || selection[category.CategoryIdentifier] {
				flags, err := reg.FlagsFor(category.CategoryIdentifier)
				require.NoError(t, err)
				expected = expected.Union(flags)
			}
		}
		for _, flag := range reg.SignalFlags() {
			assert.Equal(t, expected.Has(flag), state.IsGranted(flag), "selection %v flag %s", selection, flag)
		}
		assert.Equal(t, 500, state.WaitForUpdateMs)
	}
}

func TestDerive_RequiredFlagsAlwaysGranted(t *testing.T) {
	reg := registry.NewDefaultRegistry()

	for _, selection := range allSelections(reg) {
		selection[registry.NecessaryCategory] = false
		state, err := Derive(reg, selection, 500)
		require.NoError(t, err)
		for flag := range reg.RequiredFlags() {
			assert.Equal(t, model.Granted, state.Get(flag), "selection %v flag %s", selection, flag)
		}
	}
}

func TestDerive_OrderIndependent(t *testing.T) {
	categories := registry.DefaultCategories()
	reversed := make([]categoryModel.ConsentCategory, 0, len(categories))
	for i := len(categories) - 1; i >= 0; i-- {
		reversed = append(reversed, categories[i])
	}
	rotated := append(append([]categoryModel.ConsentCategory{}, categories[1:]...), categories[0])

	reg := registry.NewDefaultRegistry()
	for _, permutation := range [][]categoryModel.ConsentCategory{reversed, rotated} {
		permuted, err := registry.NewConsentCategoryRegistry(permutation)
		require.NoError(t, err)

		for _, selection := range allSelections(reg) {
			expected, err := Derive(reg, selection, 500)
			require.NoError(t, err)
			actual, err := Derive(permuted, selection, 500)
			require.NoError(t, err)
			assert.True(t, expected.Equal(actual), "selection %v", selection)
		}
	}
}

func TestDerive_UnknownCategory(t *testing.T) {
	_, err := Derive(registry.NewDefaultRegistry(), model.Selection{"preferences": false}, 500)

	assert.True(t, errors2.IsErrorCode(err, errors2.INVALID_CONSENT_SELECTION))
}

func TestDerive_OverlappingCategories(t *testing.T) {
	reg, err := registry.NewConsentCategoryRegistry([]categoryModel.ConsentCategory{
		{CategoryIdentifier: "essential", Required: true, SignalFlags: []categoryModel.SignalFlag{categoryModel.AnalyticsStorage}},
		{CategoryIdentifier: "ads", SignalFlags: []categoryModel.SignalFlag{categoryModel.AdStorage, categoryModel.AdUserData}},
		{CategoryIdentifier: "personalised", SignalFlags: []categoryModel.SignalFlag{categoryModel.AdUserData, categoryModel.AdPersonalization}},
	})
	require.NoError(t, err)

	state, err := Derive(reg, model.Selection{"personalised": true}, 0)
	require.NoError(t, err)

	assert.Equal(t, model.Granted, state.Get(categoryModel.AnalyticsStorage))
	assert.Equal(t, model.Denied, state.Get(categoryModel.AdStorage))
	assert.Equal(t, model.Granted, state.Get(categoryModel.AdUserData))
	assert.Equal(t, model.Granted, state.Get(categoryModel.AdPersonalization))
	assert.Equal(t, 0, state.WaitForUpdateMs)
}

func TestDefaultAndAcceptAllStates(t *testing.T) {
	reg := registry.NewDefaultRegistry()

	assert.Equal(t, []categoryModel.SignalFlag{categoryModel.AdStorage, categoryModel.AnalyticsStorage},
		DefaultState(reg, 500).GrantedFlags().List())
	assert.Equal(t, categoryModel.AllSignalFlags(), AcceptAllState(reg, 500).GrantedFlags().List())
}
