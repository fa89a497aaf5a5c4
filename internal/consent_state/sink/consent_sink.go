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

package sink

import (
	"encoding/json"
	"sync"

	"github.com/wso2/identity-consent-manager/internal/system/log"
)

// ConsentSinkInterface receives gtag style consent commands, e.g. ("consent", "update", {...}).
type ConsentSinkInterface interface {
	Gtag(command, action string, params map[string]interface{})
}

// SinkFunc adapts a function to ConsentSinkInterface.
type SinkFunc func(command, action string, params map[string]interface{})

func (f SinkFunc) Gtag(command, action string, params map[string]interface{}) {
	f(command, action, params)
}

// DataLayerEntry is one recorded gtag call.
type DataLayerEntry struct {
	Command string
	Action  string
	Params  map[string]interface{}
}

// MarshalJSON encodes the entry as the argument list pushed onto window.dataLayer.
func (e DataLayerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Command, e.Action, e.Params})
}

// DataLayer records every gtag call in order so it can be replayed by the page.
type DataLayer struct {
	mu      sync.Mutex
	entries []DataLayerEntry
}

// NewDataLayer creates an empty data layer.
func NewDataLayer() *DataLayer {
	return &DataLayer{}
}

func (d *DataLayer) Gtag(command, action string, params map[string]interface{}) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	copied := make(map[string]interface{}, len(params))
	for k, v := range params {
		copied[k] = v
	}
	d.entries = append(d.entries, DataLayerEntry{Command: command, Action: action, Params: copied})
}

// Entries returns the recorded calls, oldest first.
func (d *DataLayer) Entries() []DataLayerEntry {
	if d == nil {
		return []DataLayerEntry{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]DataLayerEntry{}, d.entries...)
}

func (d *DataLayer) Len() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}

// Reset drops every recorded call.
func (d *DataLayer) Reset() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = nil
}

// MarshalJSON encodes the data layer as [["consent","update",{...}], ...].
func (d *DataLayer) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Entries())
}

// LogSink writes each call to the debug log.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink over the shared logger.
func NewLogSink() *LogSink {
	return &LogSink{logger: log.GetLogger()}
}

func (s *LogSink) Gtag(command, action string, params map[string]interface{}) {
	if s == nil || s.logger == nil || !s.logger.IsDebugEnabled() {
		return
	}
	s.logger.Debug("gtag", log.String("command", command), log.String("action", action), log.Any("params", params))
}

// MultiSink fans each call out to every non-nil sink, in order. A nil *DataLayer or
// *LogSink in the list is a no-op.
type MultiSink []ConsentSinkInterface

func (m MultiSink) Gtag(command, action string, params map[string]interface{}) {
	for _, s := range m {
		if s != nil {
			s.Gtag(command, action, params)
		}
	}
}
