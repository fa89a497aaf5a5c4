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
	"net/http"

	"github.com/wso2/identity-consent-manager/internal/consent_state/model"
	"github.com/wso2/identity-consent-manager/internal/consent_state/provider"
	"github.com/wso2/identity-consent-manager/internal/consent_state/service"
	"github.com/wso2/identity-consent-manager/internal/consent_state/sink"
	"github.com/wso2/identity-consent-manager/internal/system/config"
	consentcontext "github.com/wso2/identity-consent-manager/internal/system/context"
	"github.com/wso2/identity-consent-manager/internal/system/log"
	"github.com/wso2/identity-consent-manager/internal/system/utils"
)

// ConsentStateResponse is returned when the page loads the visitor's consent.
type ConsentStateResponse struct {
	State         model.ConsentState `json:"state"`
	IsFirstVisit  bool               `json:"is_first_visit"`
	ShowBanner    bool               `json:"show_banner"`
	BannerDelayMs int                `json:"banner_delay_ms"`
	DataLayer     *sink.DataLayer    `json:"data_layer"`
}

// ConsentUpdateResponse is returned after the visitor changes their consent.
type ConsentUpdateResponse struct {
	State     model.ConsentState `json:"state"`
	DataLayer *sink.DataLayer    `json:"data_layer"`
}

// ConsentPreferencesRequest carries the switches of the preferences modal.
type ConsentPreferencesRequest struct {
	Selection model.Selection `json:"selection"`
}

type ConsentStateHandler struct {
	provider provider.ConsentStateProviderInterface
	config   config.ConsentConfig
}

func NewConsentStateHandler(consentProvider provider.ConsentStateProviderInterface,
	consentConfig config.ConsentConfig) *ConsentStateHandler {

	return &ConsentStateHandler{
		provider: consentProvider,
		config:   consentConfig,
	}
}

// GetConsentState handles GET /consent
func (h *ConsentStateHandler) GetConsentState(w http.ResponseWriter, r *http.Request) {

	dataLayer := sink.NewDataLayer()
	engine, err := h.engineFor(r, dataLayer)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	result, err := engine.Initialize()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, ConsentStateResponse{
		State:         result.State,
		IsFirstVisit:  result.IsFirstVisit,
		ShowBanner:    result.IsFirstVisit,
		BannerDelayMs: h.config.BannerDelayMs,
		DataLayer:     dataLayer,
	})
}

// AcceptAll handles POST /consent/accept-all
func (h *ConsentStateHandler) AcceptAll(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(engine service.ConsentStateEngineInterface) (model.ConsentState, error) {
		return engine.AcceptAll()
	})
}

// RejectAll handles POST /consent/reject-all
func (h *ConsentStateHandler) RejectAll(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(engine service.ConsentStateEngineInterface) (model.ConsentState, error) {
		return engine.RejectAll()
	})
}

// UpdatePreferences handles PUT /consent/preferences
func (h *ConsentStateHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {

	var request ConsentPreferencesRequest
	if err := utils.DecodeJSONBody(w, r, &request); err != nil {
		utils.HandleError(w, utils.BadRequest(err, "consent preferences", consentcontext.GetTraceID(r.Context())))
		return
	}
	if request.Selection == nil {
		request.Selection = model.Selection{}
	}

	h.update(w, r, func(engine service.ConsentStateEngineInterface) (model.ConsentState, error) {
		return engine.ApplySelection(request.Selection)
	})
}

// update loads the visitor's engine, applies mutate and returns only the commands the mutation pushed.
func (h *ConsentStateHandler) update(w http.ResponseWriter, r *http.Request,
	mutate func(engine service.ConsentStateEngineInterface) (model.ConsentState, error)) {

	dataLayer := sink.NewDataLayer()
	engine, err := h.engineFor(r, dataLayer)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if _, err := engine.Initialize(); err != nil {
		utils.HandleError(w, err)
		return
	}
	dataLayer.Reset()

	state, err := mutate(engine)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ConsentUpdateResponse{
		State:     state,
		DataLayer: dataLayer,
	})
}

func (h *ConsentStateHandler) engineFor(r *http.Request,
	dataLayer *sink.DataLayer) (service.ConsentStateEngineInterface, error) {

	visitorId := consentcontext.GetVisitorID(r.Context())
	logger := log.GetLogger()
	logger.Debug("Resolving consent engine",
		log.VisitorID(visitorId), log.TraceID(consentcontext.GetTraceID(r.Context())))

	return h.provider.GetConsentStateEngine(visitorId, sink.MultiSink{dataLayer, sink.NewLogSink()})
}
