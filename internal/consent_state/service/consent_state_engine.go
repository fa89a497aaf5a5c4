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
	"encoding/json"
	"net/http"

	"github.com/wso2/identity-consent-manager/internal/consent_category/registry"
	"github.com/wso2/identity-consent-manager/internal/consent_state/model"
	"github.com/wso2/identity-consent-manager/internal/consent_state/sink"
	"github.com/wso2/identity-consent-manager/internal/consent_state/store"
	"github.com/wso2/identity-consent-manager/internal/system/constants"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/log"
)

const (
	actionAcceptAll      = "accept-all"
	actionRejectAll      = "reject-all"
	actionApplySelection = "apply-selection"
)

// ConsentStateEngineInterface is the entry point the presentation layer calls into.
type ConsentStateEngineInterface interface {
	Initialize() (model.InitResult, error)
	AcceptAll() (model.ConsentState, error)
	RejectAll() (model.ConsentState, error)
	ApplySelection(selection model.Selection) (model.ConsentState, error)
	Current() (model.ConsentState, error)
	IsInitialized() bool
	IsFirstVisit() bool
}

// EngineConfig tunes a consent state engine. Zero values fall back to the defaults.
type EngineConfig struct {
	StorageKey string
	// WaitForUpdateMs falls back to the default when nil or negative.
	WaitForUpdateMs *int
	// SubjectID identifies the visitor in audit entries.
	SubjectID string
}

// ConsentStateEngine owns the single current consent state of one visitor.
// It is not safe for concurrent use.
type ConsentStateEngine struct {
	registry     registry.ConsentCategoryRegistryInterface
	store        store.ConsentStateStoreInterface
	sink         sink.ConsentSinkInterface
	config       EngineConfig
	waitMs       int
	logger       *log.Logger
	state        model.ConsentState
	initialized  bool
	isFirstVisit bool
}

// NewConsentStateEngine creates an uninitialized engine. store and consentSink may be nil,
// in which case persistence and notification are skipped.
func NewConsentStateEngine(reg registry.ConsentCategoryRegistryInterface, consentStore store.ConsentStateStoreInterface,
	consentSink sink.ConsentSinkInterface, config EngineConfig) *ConsentStateEngine {

	if config.StorageKey == "" {
		config.StorageKey = constants.ConsentStateStorageKey
	}
	waitMs := constants.DefaultWaitForUpdateMs
	if config.WaitForUpdateMs != nil && *config.WaitForUpdateMs >= 0 {
		waitMs = *config.WaitForUpdateMs
	}
	if config.SubjectID == "" {
		config.SubjectID = "anonymous"
	}
	return &ConsentStateEngine{
		registry: reg,
		store:    consentStore,
		sink:     consentSink,
		config:   config,
		waitMs:   waitMs,
		logger:   log.GetLogger().With(log.StorageKey(config.StorageKey)),
	}
}

// Initialize loads the persisted state, or falls back to the default state on a first visit.
// The first-visit path neither persists nor notifies.
func (e *ConsentStateEngine) Initialize() (model.InitResult, error) {

	if e.initialized {
		return model.InitResult{}, errors2.NewClientError(errors2.CONSENT_ALREADY_INITIALIZED, http.StatusConflict)
	}

	if state, ok := e.load(); ok {
		e.state = state
		e.initialized = true
		e.isFirstVisit = false
		e.notify()
		e.logger.Audit(log.AuditEvent{
			InitiatorID:   e.config.SubjectID,
			InitiatorType: log.InitiatorTypeUser,
			TargetID:      e.config.StorageKey,
			TargetType:    log.TargetTypeConsentState,
			ActionID:      log.ActionLoadConsentState,
			Data:          e.state,
		})
		return model.InitResult{State: e.state.Clone(), IsFirstVisit: false}, nil
	}

	e.state = DefaultState(e.registry, e.waitMs)
	e.initialized = true
	e.isFirstVisit = true
	e.logger.Debug("No persisted consent state, using defaults")
	return model.InitResult{State: e.state.Clone(), IsFirstVisit: true}, nil
}

// AcceptAll grants every flag.
func (e *ConsentStateEngine) AcceptAll() (model.ConsentState, error) {

	if err := e.requireInitialized(); err != nil {
		return model.ConsentState{}, err
	}
	return e.replace(AcceptAllState(e.registry, e.waitMs), actionAcceptAll), nil
}

// RejectAll denies every flag except those of required categories.
func (e *ConsentStateEngine) RejectAll() (model.ConsentState, error) {

	if err := e.requireInitialized(); err != nil {
		return model.ConsentState{}, err
	}
	return e.replace(DefaultState(e.registry, e.waitMs), actionRejectAll), nil
}

// ApplySelection grants the flags of the selected and required categories.
func (e *ConsentStateEngine) ApplySelection(selection model.Selection) (model.ConsentState, error) {

	if err := e.requireInitialized(); err != nil {
		return model.ConsentState{}, err
	}
	state, err := Derive(e.registry, selection, e.waitMs)
	if err != nil {
		return model.ConsentState{}, err
	}
	return e.replace(state, actionApplySelection), nil
}

// Current returns a snapshot of the current state.
func (e *ConsentStateEngine) Current() (model.ConsentState, error) {

	if err := e.requireInitialized(); err != nil {
		return model.ConsentState{}, err
	}
	return e.state.Clone(), nil
}

func (e *ConsentStateEngine) IsInitialized() bool {
	return e.initialized
}

// IsFirstVisit reports whether Initialize found no usable persisted state.
func (e *ConsentStateEngine) IsFirstVisit() bool {
	return e.initialized && e.isFirstVisit
}

func (e *ConsentStateEngine) requireInitialized() error {
	if !e.initialized {
		return errors2.NewClientError(errors2.CONSENT_NOT_INITIALIZED, http.StatusConflict)
	}
	return nil
}

// replace swaps in the new state wholesale, then persists and notifies.
func (e *ConsentStateEngine) replace(state model.ConsentState, action string) model.ConsentState {

	e.state = state
	e.persist()
	e.notify()
	e.logger.Audit(log.AuditEvent{
		InitiatorID:   e.config.SubjectID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      e.config.StorageKey,
		TargetType:    log.TargetTypeConsentState,
		ActionID:      log.ActionUpdateConsentState,
		Data: map[string]interface{}{
			"action": action,
			"state":  e.state,
		},
	})
	return e.state.Clone()
}

// load reads and validates the persisted state. Any failure reads as absent.
// Flags of required categories are granted regardless of what was stored.
func (e *ConsentStateEngine) load() (model.ConsentState, bool) {

	if e.store == nil {
		return model.ConsentState{}, false
	}
	data, err := e.store.GetConsentState(e.config.StorageKey)
	if err != nil {
		e.logger.Warn("Failed to read persisted consent state, treating as absent", log.Error(err))
		return model.ConsentState{}, false
	}
	if data == nil {
		return model.ConsentState{}, false
	}
	state, err := model.ParseConsentState(data)
	if err != nil {
		e.logger.Warn("Discarding malformed persisted consent state", log.Error(err))
		return model.ConsentState{}, false
	}
	if !isComplete(e.registry, state) {
		e.logger.Warn("Discarding persisted consent state with unexpected flags")
		return model.ConsentState{}, false
	}
	for flag := range e.registry.RequiredFlags() {
		if state.Flags[flag] != model.Granted {
			e.logger.Debug("Granting required flag in persisted consent state", log.Flag(string(flag)))
			state.Flags[flag] = model.Granted
		}
	}
	return state, true
}

// persist writes the current state. Failures are logged, never surfaced.
func (e *ConsentStateEngine) persist() {

	if e.store == nil {
		e.logger.Debug("No consent state store configured, skipping persistence")
		return
	}
	data, err := json.Marshal(e.state)
	if err != nil {
		e.logger.Warn("Failed to marshal consent state", log.Error(err))
		return
	}
	if err := e.store.SaveConsentState(e.config.StorageKey, data); err != nil {
		e.logger.Warn("Failed to persist consent state", log.Error(err))
	}
}

// notify sends ("consent", "update", state) to the sink, if one is registered.
func (e *ConsentStateEngine) notify() {

	if e.sink == nil {
		return
	}
	e.sink.Gtag(constants.GtagCommandConsent, constants.GtagActionUpdate, e.state.ToGtagParams())
}
