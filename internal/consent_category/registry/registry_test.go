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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-consent-manager/internal/consent_category/model"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
)

func TestDefaultRegistry_ListCategoriesKeepsInsertionOrder(t *testing.T) {
	reg := NewDefaultRegistry()

	categories := reg.ListCategories()
	require.Len(t, categories, 3)
	assert.Equal(t, NecessaryCategory, categories[0].CategoryIdentifier)
	assert.Equal(t, AnalyticsCategory, categories[1].CategoryIdentifier)
	assert.Equal(t, MarketingCategory, categories[2].CategoryIdentifier)
	assert.Equal(t, 5, categories[0].CookieCount())
	assert.Equal(t, 2, categories[1].CookieCount())
	assert.Equal(t, 1, categories[2].CookieCount())
}

func TestDefaultRegistry_ListCategoriesReturnsCopies(t *testing.T) {
	reg := NewDefaultRegistry()

	categories := reg.ListCategories()
	categories[0].SignalFlags[0] = model.AdPersonalization
	categories[0].Required = false

	fresh := reg.ListCategories()
	assert.Equal(t, model.AdStorage, fresh[0].SignalFlags[0])
	assert.True(t, fresh[0].Required)
}

func TestDefaultRegistry_FlagsFor(t *testing.T) {
	reg := NewDefaultRegistry()

	tests := []struct {
		name     string
		category string
		expected []model.SignalFlag
	}{
		{"necessary", NecessaryCategory, []model.SignalFlag{model.AdStorage, model.AnalyticsStorage}},
		{"analytics", AnalyticsCategory, []model.SignalFlag{model.AnalyticsStorage}},
		{"marketing", MarketingCategory, []model.SignalFlag{model.AdStorage, model.AdUserData, model.AdPersonalization}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := reg.FlagsFor(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flags.List())
		})
	}
}

func TestDefaultRegistry_FlagsForUnknownCategory(t *testing.T) {
	reg := NewDefaultRegistry()

	flags, err := reg.FlagsFor("preferences")
	assert.Nil(t, flags)
	assert.True(t, errors2.IsErrorCode(err, errors2.UNKNOWN_CONSENT_CATEGORY))

	_, err = reg.GetCategory("preferences")
	assert.True(t, errors2.IsErrorCode(err, errors2.UNKNOWN_CONSENT_CATEGORY))
}

func TestDefaultRegistry_RequiredFlags(t *testing.T) {
	reg := NewDefaultRegistry()

	required := reg.RequiredFlags()
	assert.Equal(t, []model.SignalFlag{model.AdStorage, model.AnalyticsStorage}, required.List())

	// mutating the returned set must not leak into the registry
	required.Add(model.AdUserData)
	assert.False(t, reg.RequiredFlags().Has(model.AdUserData))
}

func TestDefaultRegistry_TogglableCategories(t *testing.T) {
	reg := NewDefaultRegistry()

	togglable := reg.TogglableCategories()
	require.Len(t, togglable, 2)
	assert.Equal(t, AnalyticsCategory, togglable[0].CategoryIdentifier)
	assert.Equal(t, MarketingCategory, togglable[1].CategoryIdentifier)
}

func TestNewConsentCategoryRegistry_Validation(t *testing.T) {
	required := model.ConsentCategory{
		CategoryIdentifier: "necessary",
		Required:           true,
		SignalFlags:        []model.SignalFlag{model.AdStorage},
	}

	tests := []struct {
		name       string
		categories []model.ConsentCategory
	}{
		{"empty catalog", nil},
		{"no required category", []model.ConsentCategory{
			{CategoryIdentifier: "analytics", SignalFlags: []model.SignalFlag{model.AnalyticsStorage}},
		}},
		{"required category without flags", []model.ConsentCategory{
			{CategoryIdentifier: "necessary", Required: true},
		}},
		{"missing identifier", []model.ConsentCategory{
			required,
			{CategoryName: "Nameless", SignalFlags: []model.SignalFlag{model.AdStorage}},
		}},
		{"duplicate identifier", []model.ConsentCategory{required, required}},
		{"unknown flag", []model.ConsentCategory{
			required,
			{CategoryIdentifier: "functional", SignalFlags: []model.SignalFlag{"functionality_storage"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewConsentCategoryRegistry(tt.categories)
			assert.Nil(t, reg)
			assert.True(t, errors2.IsErrorCode(err, errors2.INVALID_CONSENT_CATALOG))
		})
	}
}

func TestNewConsentCategoryRegistry_InformationalCategoryWithoutFlags(t *testing.T) {
	reg, err := NewConsentCategoryRegistry([]model.ConsentCategory{
		{CategoryIdentifier: "necessary", Required: true, SignalFlags: []model.SignalFlag{model.AdStorage}},
		{CategoryIdentifier: "information"},
	})
	require.NoError(t, err)

	flags, err := reg.FlagsFor("information")
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestParseCatalog(t *testing.T) {
	content := []byte(`
categories:
  - category_identifier: necessary
    category_name: Necessary
    required: true
    signal_flags: [ad_storage, analytics_storage]
    cookies:
      - name: XSRF-TOKEN
        duration: 2 hours
        description: CSRF protection.
  - category_identifier: analytics
    category_name: Analytics
    signal_flags: [analytics_storage]
`)

	reg, err := ParseCatalog(content)
	require.NoError(t, err)

	categories := reg.ListCategories()
	require.Len(t, categories, 2)
	assert.Equal(t, "XSRF-TOKEN", categories[0].Cookies[0].Name)
	assert.Equal(t, []model.SignalFlag{model.AnalyticsStorage}, categories[1].SignalFlags)
}

func TestParseCatalog_RejectsUnknownFields(t *testing.T) {
	content := []byte(`
categories:
  - category_identifier: necessary
    required: true
    signal_flags: [ad_storage]
    purpose: profiling
`)

	reg, err := ParseCatalog(content)
	assert.Nil(t, reg)
	assert.True(t, errors2.IsErrorCode(err, errors2.LOAD_CONSENT_CATALOG))
}

func TestParseCatalog_ValidatesCategories(t *testing.T) {
	content := []byte(`
categories:
  - category_identifier: analytics
    signal_flags: [analytics_storage]
`)

	reg, err := ParseCatalog(content)
	assert.Nil(t, reg)
	assert.True(t, errors2.IsErrorCode(err, errors2.INVALID_CONSENT_CATALOG))
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	reg, err := LoadCatalog(t.TempDir(), "missing.yaml")
	assert.Nil(t, reg)
	assert.True(t, errors2.IsErrorCode(err, errors2.LOAD_CONSENT_CATALOG))
}

func TestLoadCatalog_ShippedCatalogMatchesDefaults(t *testing.T) {
	reg, err := LoadCatalog("../../..", "repository/conf/consent_categories.yaml")
	require.NoError(t, err)

	assert.Equal(t, DefaultCategories(), reg.ListCategories())
}
