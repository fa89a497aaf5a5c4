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

package store

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/wso2/identity-consent-manager/internal/system/cache"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/log"
)

// ConsentStateStoreInterface is a durable key-value entry holding a serialized consent state.
// GetConsentState returns nil and no error when the key is absent.
type ConsentStateStoreInterface interface {
	GetConsentState(key string) ([]byte, error)
	SaveConsentState(key string, value []byte) error
}

// MemoryStore keeps consent states in process memory.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a memory store whose entries expire after ttl. A zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.NewCache(ttl)}
}

func (s *MemoryStore) GetConsentState(key string) ([]byte, error) {
	value, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	data, _ := value.([]byte)
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) SaveConsentState(key string, value []byte) error {
	s.cache.Set(key, append([]byte(nil), value...))
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (s *MemoryStore) Purge() int {
	return s.cache.Purge()
}

// StartJanitor purges expired entries every interval until the returned func is called.
func (s *MemoryStore) StartJanitor(interval time.Duration) CloseFunc {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if purged := s.Purge(); purged > 0 {
					log.GetLogger().Debug("Purged expired consent states", log.Int("count", purged))
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() error {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
		return nil
	}
}

// VisitorScopedStore namespaces every key with a visitor identifier so one
// backing store can serve many visitors under the engine's fixed key.
type VisitorScopedStore struct {
	visitorId string
	delegate  ConsentStateStoreInterface
}

// NewVisitorScopedStore wraps delegate for one visitor.
func NewVisitorScopedStore(visitorId string, delegate ConsentStateStoreInterface) (*VisitorScopedStore, error) {
	visitorId = strings.TrimSpace(visitorId)
	if visitorId == "" || strings.Contains(visitorId, ":") {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_VISITOR.Code,
			Message:     errors2.INVALID_VISITOR.Message,
			Description: "Visitor identifier must be non-empty and must not contain ':'.",
		}, http.StatusBadRequest)
	}
	return &VisitorScopedStore{visitorId: visitorId, delegate: delegate}, nil
}

func (s *VisitorScopedStore) GetConsentState(key string) ([]byte, error) {
	return s.delegate.GetConsentState(s.scopedKey(key))
}

func (s *VisitorScopedStore) SaveConsentState(key string, value []byte) error {
	return s.delegate.SaveConsentState(s.scopedKey(key), value)
}

func (s *VisitorScopedStore) scopedKey(key string) string {
	return fmt.Sprintf("%s:%s", s.visitorId, key)
}
