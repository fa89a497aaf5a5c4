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

package constants

const ApiBasePath = "/api/v1"

const DefaultPort = 8900

// ConsentStateStorageKey is the fixed key the consent state is persisted under.
const ConsentStateStorageKey = "consent_state"

// DefaultWaitForUpdateMs is the latency budget handed to the tag layer.
const DefaultWaitForUpdateMs = 500

// DefaultBannerDelayMs is how long the presentation layer waits before showing the banner.
const DefaultBannerDelayMs = 1000

const (
	VisitorCookieName              = "consent_visitor_id"
	DefaultVisitorCookieMaxAgeDays = 395
)

const (
	StoreTypeMemory   = "memory"
	StoreTypeSQLite   = "sqlite"
	StoreTypePostgres = "postgres"
	StoreTypeMongoDB  = "mongodb"
)

const DefaultMongoCollection = "consent_states"

// Gtag command keywords used when notifying the tag layer.
const (
	GtagCommandConsent = "consent"
	GtagActionUpdate   = "update"
)

type contextKey string

const TraceIDContextKey contextKey = "trace_id"

const VisitorIDContextKey contextKey = "visitor_id"
