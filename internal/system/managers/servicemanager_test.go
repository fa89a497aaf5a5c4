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

package managers

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
	"github.com/wso2/identity-consent-manager/internal/system/config"
	"github.com/wso2/identity-consent-manager/internal/system/constants"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{}
	config.ApplyDefaults(&cfg)

	mux := http.NewServeMux()
	require.NoError(t, NewServiceManager(mux, registry.NewDefaultRegistry(), store.NewMemoryStore(0), cfg.Consent).
		RegisterServices(constants.ApiBasePath))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, client *http.Client, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func TestRegisterServices_VisitorFlow(t *testing.T) {
	server := newTestServer(t)
	client := &http.Client{Jar: newJar(t)}
	base := server.URL + constants.ApiBasePath

	resp, body := do(t, client, http.MethodGet, base+"/consent", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["show_banner"])
	assert.Equal(t, float64(1000), body["banner_delay_ms"])

	resp, _ = do(t, client, http.MethodPut, base+"/consent/preferences", `{"selection":{"marketing":true}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, client, http.MethodGet, base+"/consent", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["is_first_visit"])
	state := body["state"].(map[string]interface{})
	assert.Equal(t, "granted", state["ad_personalization"])
	assert.Equal(t, "granted", state["analytics_storage"])

	other := &http.Client{Jar: newJar(t)}
	_, body = do(t, other, http.MethodGet, base+"/consent", "")
	assert.Equal(t, true, body["is_first_visit"], "visitors must not share consent")
}

func TestRegisterServices_RoutesCatalogAndHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + constants.ApiBasePath + "/consent-categories")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + constants.ApiBasePath + "/profiles")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(server.URL+constants.ApiBasePath+"/consent", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func newJar(t *testing.T) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return jar
}
