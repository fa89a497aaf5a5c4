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

package security

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/wso2/identity-consent-manager/internal/system/constants"
	consentcontext "github.com/wso2/identity-consent-manager/internal/system/context"
	"github.com/wso2/identity-consent-manager/internal/system/log"
)

const traceIDHeader = "X-Trace-Id"

// WithTraceID attaches the caller's trace id, or a generated one, to the request context and response.
func WithTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := strings.TrimSpace(r.Header.Get(traceIDHeader))
		if traceID == "" {
			traceID = consentcontext.GetOrGenerateTraceID(r.Context())
		}
		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(consentcontext.WithTraceID(r.Context(), traceID)))
	})
}

// WithVisitor resolves the anonymous visitor id from cookieName and issues a new one when
// the cookie is missing or not a uuid.
func WithVisitor(cookieName string, maxAgeDays int, next http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = constants.VisitorCookieName
	}
	if maxAgeDays <= 0 {
		maxAgeDays = constants.DefaultVisitorCookieMaxAgeDays
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorID := ""
		if cookie, err := r.Cookie(cookieName); err == nil {
			if parsed, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
				visitorID = parsed.String()
			}
		}
		if visitorID == "" {
			visitorID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    visitorID,
				Path:     "/",
				MaxAge:   maxAgeDays * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			log.GetLogger().Debug("Issued visitor id", log.VisitorID(visitorID))
		}
		next.ServeHTTP(w, r.WithContext(consentcontext.WithVisitorID(r.Context(), visitorID)))
	})
}

// EnableCORS answers preflight requests and echoes the origin when it is allowed.
// A "*" entry allows every origin.
func EnableCORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if allowAll || ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+traceIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", "Content-Length, "+traceIDHeader)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
