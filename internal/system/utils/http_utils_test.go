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

package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	customerrors "github.com/wso2/identity-consent-manager/internal/system/errors"
)

type selectionBody struct {
	Selection map[string]bool `json:"selection"`
}

func decode(body string) error {
	r := httptest.NewRequest(http.MethodPut, "/consent/preferences", strings.NewReader(body))
	var target selectionBody
	return DecodeJSONBody(httptest.NewRecorder(), r, &target)
}

func TestDecodeJSONBody_Accepts(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/consent/preferences", strings.NewReader(`{"selection":{"analytics":true}}`+"\n"))
	var target selectionBody
	require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), r, &target))
	assert.Equal(t, map[string]bool{"analytics": true}, target.Selection)
}

func TestHandleDecodeError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"empty body", "", "Request body for consent preferences is empty."},
		{"unknown field", `{"choices":{}}`, `Unknown field "choices" in consent preferences request body.`},
		{"truncated", `{"selection":`, "Request body for consent preferences is truncated."},
		{"syntax", `{"selection" 1}`, "Malformed JSON at offset 14 in consent preferences request body."},
		{"array body", `[1]`, "Request body for consent preferences must be a JSON object."},
		{"wrong field type", `{"selection":"yes"}`, "Invalid type for field 'selection' in consent preferences request body."},
		{"trailing object", `{"selection":{}}{"selection":{}}`, "Request body for consent preferences must hold exactly one JSON object."},
		{"too large", `{"selection":{"` + strings.Repeat("a", MaxBodyBytes) + `":true}}`, "Request body for consent preferences exceeds 65536 bytes."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.expected, HandleDecodeError(err, "consent preferences"))
		})
	}
	assert.Equal(t, "", HandleDecodeError(nil, "consent preferences"))
}

func TestHandleError_ClientError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, customerrors.NewClientError(customerrors.INVALID_CONSENT_SELECTION, http.StatusBadRequest))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, customerrors.INVALID_CONSENT_SELECTION.Code, body["code"])
}

func TestHandleError_ServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, customerrors.NewServerError(customerrors.FETCH_CONSENT_STATE, errors.New("boom")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
