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

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	categoryModel "github.com/wso2/identity-consent-manager/internal/consent_category/model"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
)

// FlagValue is the consent value of one signal flag.
type FlagValue string

const (
	Granted FlagValue = "granted"
	Denied  FlagValue = "denied"
)

// WaitForUpdateField is the persisted name of WaitForUpdateMs.
const WaitForUpdateField = "wait_for_update"

// ConsentState maps every signal flag to its value. It serializes to the persisted
// and gtag object form: {"ad_storage": "granted", ..., "wait_for_update": 500}.
type ConsentState struct {
	Flags           map[categoryModel.SignalFlag]FlagValue
	WaitForUpdateMs int
}

// Selection maps a category identifier to whether the user opted in.
type Selection map[string]bool

// InitResult is returned by engine initialization.
type InitResult struct {
	State        ConsentState `json:"state"`
	IsFirstVisit bool         `json:"is_first_visit"`
}

// NewConsentState returns a state with every given flag denied.
func NewConsentState(flags []categoryModel.SignalFlag, waitForUpdateMs int) ConsentState {
	state := ConsentState{
		Flags:           make(map[categoryModel.SignalFlag]FlagValue, len(flags)),
		WaitForUpdateMs: waitForUpdateMs,
	}
	for _, flag := range flags {
		state.Flags[flag] = Denied
	}
	return state
}

// Get returns the value of flag, denied when it is absent.
func (s ConsentState) Get(flag categoryModel.SignalFlag) FlagValue {
	if value, ok := s.Flags[flag]; ok {
		return value
	}
	return Denied
}

func (s ConsentState) IsGranted(flag categoryModel.SignalFlag) bool {
	return s.Get(flag) == Granted
}

// GrantedFlags returns the set of granted flags.
func (s ConsentState) GrantedFlags() categoryModel.SignalFlagSet {
	granted := categoryModel.NewSignalFlagSet()
	for flag, value := range s.Flags {
		if value == Granted {
			granted.Add(flag)
		}
	}
	return granted
}

// Clone returns a copy that shares no map with s.
func (s ConsentState) Clone() ConsentState {
	clone := ConsentState{
		Flags:           make(map[categoryModel.SignalFlag]FlagValue, len(s.Flags)),
		WaitForUpdateMs: s.WaitForUpdateMs,
	}
	for flag, value := range s.Flags {
		clone.Flags[flag] = value
	}
	return clone
}

// Equal reports whether both states carry the same flags, values and wait budget.
func (s ConsentState) Equal(other ConsentState) bool {
	if s.WaitForUpdateMs != other.WaitForUpdateMs || len(s.Flags) != len(other.Flags) {
		return false
	}
	for flag, value := range s.Flags {
		if otherValue, ok := other.Flags[flag]; !ok || otherValue != value {
			return false
		}
	}
	return true
}

// ToGtagParams returns the state as the parameter object of a gtag consent command.
func (s ConsentState) ToGtagParams() map[string]interface{} {
	params := make(map[string]interface{}, len(s.Flags)+1)
	for flag, value := range s.Flags {
		params[string(flag)] = string(value)
	}
	params[WaitForUpdateField] = s.WaitForUpdateMs
	return params
}

// MarshalJSON writes flags in canonical order followed by wait_for_update.
func (s ConsentState) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, flag := range categoryModel.AllSignalFlags() {
		value, ok := s.Flags[flag]
		if !ok {
			continue
		}
		buf.WriteString(strconv.Quote(string(flag)))
		buf.WriteByte(':')
		buf.WriteString(strconv.Quote(string(value)))
		buf.WriteByte(',')
	}
	buf.WriteString(strconv.Quote(WaitForUpdateField))
	buf.WriteByte(':')
	buf.WriteString(strconv.Itoa(s.WaitForUpdateMs))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the persisted form strictly, see ParseConsentState.
func (s *ConsentState) UnmarshalJSON(data []byte) error {
	state, err := ParseConsentState(data)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// ParseConsentState parses a persisted consent state. The object must hold exactly the
// Consent Mode flags, each granted or denied, and a non-negative integer wait_for_update.
// Repeated keys are rejected.
func ParseConsentState(data []byte) (ConsentState, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return ConsentState{}, err
	}

	flags := categoryModel.AllSignalFlags()
	if len(raw) != len(flags)+1 {
		return ConsentState{}, malformed(fmt.Sprintf("Persisted consent state has %d fields, expected %d.",
			len(raw), len(flags)+1), nil)
	}

	state := ConsentState{Flags: make(map[categoryModel.SignalFlag]FlagValue, len(flags))}
	for _, flag := range flags {
		rawValue, ok := raw[string(flag)]
		if !ok {
			return ConsentState{}, malformed(fmt.Sprintf("Persisted consent state is missing %s.", flag), nil)
		}
		var value string
		if err := json.Unmarshal(rawValue, &value); err != nil {
			return ConsentState{}, malformed(fmt.Sprintf("Invalid value for %s.", flag), err)
		}
		switch FlagValue(value) {
		case Granted, Denied:
			state.Flags[flag] = FlagValue(value)
		default:
			return ConsentState{}, malformed(fmt.Sprintf("Invalid value %q for %s.", value, flag), nil)
		}
	}

	rawWait, ok := raw[WaitForUpdateField]
	if !ok {
		return ConsentState{}, malformed("Persisted consent state is missing wait_for_update.", nil)
	}
	wait, convErr := strconv.Atoi(string(bytes.TrimSpace(rawWait)))
	if convErr != nil || wait < 0 {
		return ConsentState{}, malformed("wait_for_update must be a non-negative integer.", convErr)
	}
	state.WaitForUpdateMs = wait
	return state, nil
}

// decodeObject reads a single top level JSON object, rejecting repeated keys and trailing data.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	notObject := func(cause error) error {
		return malformed("Persisted consent state is not a JSON object.", cause)
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, notObject(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, notObject(nil)
	}

	raw := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, notObject(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, notObject(nil)
		}
		if _, seen := raw[key]; seen {
			return nil, malformed(fmt.Sprintf("Persisted consent state repeats %s.", key), nil)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, notObject(err)
		}
		raw[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, notObject(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed("Persisted consent state has trailing data.", err)
	}
	return raw, nil
}

func malformed(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.UNMARSHAL_JSON.Code,
		Message:     errors2.UNMARSHAL_JSON.Message,
		Description: description,
	}, cause)
}
