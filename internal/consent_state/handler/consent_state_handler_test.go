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

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/provider"
	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
	"github.com/wso2/identity-consent-manager/internal/system/config"
	consentcontext "github.com/wso2/identity-consent-manager/internal/system/context"
	"github.com/wso2/identity-consent-manager/internal/system/errors"
)

const testVisitor = "6f1c2d3e-0000-4000-8000-000000000001"

type stateBody struct {
	State         map[string]interface{} `json:"state"`
	IsFirstVisit  bool                   `json:"is_first_visit"`
	ShowBanner    bool                   `json:"show_banner"`
	BannerDelayMs int                    `json:"banner_delay_ms"`
	DataLayer     [][]interface{}        `json:"data_layer"`
}

func newTestHandler() *ConsentStateHandler {
	consentConfig := config.ConsentConfig{StorageKey: "consent_state", BannerDelayMs: 1000}
	p := provider.NewConsentStateProvider(registry.NewDefaultRegistry(), store.NewMemoryStore(0), consentConfig)
	return NewConsentStateHandler(p, consentConfig)
}

func serve(t *testing.T, handlerFunc http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, stateBody) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(consentcontext.WithVisitorID(req.Context(), testVisitor))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)

	var parsed stateBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestGetConsentState_FirstVisit(t *testing.T) {
	h := newTestHandler()

	rec, body := serve(t, h.GetConsentState, http.MethodGet, "/consent", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.IsFirstVisit)
	assert.True(t, body.ShowBanner)
	assert.Equal(t, 1000, body.BannerDelayMs)
	assert.Equal(t, "granted", body.State["ad_storage"])
	assert.Equal(t, "denied", body.State["ad_user_data"])
	assert.Empty(t, body.DataLayer)
}

func TestAcceptAll_ThenReload(t *testing.T) {
	h := newTestHandler()

	rec, body := serve(t, h.AcceptAll, http.MethodPost, "/consent/accept-all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", body.State["ad_personalization"])
	require.Len(t, body.DataLayer, 1)
	assert.Equal(t, "consent", body.DataLayer[0][0])
	assert.Equal(t, "update", body.DataLayer[0][1])

	rec, body = serve(t, h.GetConsentState, http.MethodGet, "/consent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.IsFirstVisit)
	assert.False(t, body.ShowBanner)
	assert.Equal(t, "granted", body.State["ad_user_data"])
	require.Len(t, body.DataLayer, 1, "a returning visitor replays the stored consent")
}

func TestRejectAll(t *testing.T) {
	h := newTestHandler()

	rec, body := serve(t, h.RejectAll, http.MethodPost, "/consent/reject-all", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", body.State["analytics_storage"])
	assert.Equal(t, "denied", body.State["ad_personalization"])
	assert.Equal(t, float64(500), body.State["wait_for_update"])
}

func TestUpdatePreferences(t *testing.T) {
	h := newTestHandler()

	rec, body := serve(t, h.UpdatePreferences, http.MethodPut, "/consent/preferences",
		`{"selection":{"analytics":true,"marketing":false}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", body.State["ad_storage"])
	assert.Equal(t, "granted", body.State["analytics_storage"])
	assert.Equal(t, "denied", body.State["ad_user_data"])
	assert.Equal(t, "denied", body.State["ad_personalization"])
	assert.Len(t, body.DataLayer, 1)
}

func TestUpdatePreferences_UnknownCategory(t *testing.T) {
	h := newTestHandler()

	rec, _ := serve(t, h.UpdatePreferences, http.MethodPut, "/consent/preferences", `{"selection":{"preferences":true}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.INVALID_CONSENT_SELECTION.Code, body["code"])

	_, state := serve(t, h.GetConsentState, http.MethodGet, "/consent", "")
	assert.True(t, state.IsFirstVisit, "a rejected selection must not be stored")
}

func TestUpdatePreferences_BadBody(t *testing.T) {
	h := newTestHandler()

	rec, _ := serve(t, h.UpdatePreferences, http.MethodPut, "/consent/preferences", `{"choices":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.BAD_REQUEST.Code, body["code"])
	assert.Contains(t, body["description"], "choices")
}

func TestGetConsentState_MissingVisitor(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()

	h.GetConsentState(rec, httptest.NewRequest(http.MethodGet, "/consent", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
