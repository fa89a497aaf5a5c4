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

package registry

import (
	"fmt"
	"os"
	"path"

	"github.com/wso2/identity-consent-manager/internal/consent_category/model"
	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/log"
	"gopkg.in/yaml.v2"
)

// catalogFile is the on-disk shape of a consent catalog.
type catalogFile struct {
	Categories []model.ConsentCategory `yaml:"categories"`
}

// LoadCatalog reads a YAML catalog relative to consentHome and builds a registry from it.
func LoadCatalog(consentHome, filePath string) (*ConsentCategoryRegistry, error) {

	logger := log.GetLogger()
	file, err := os.ReadFile(path.Join(consentHome, filePath))
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to read consent catalog file: %s", filePath)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LOAD_CONSENT_CATALOG.Code,
			Message:     errors2.LOAD_CONSENT_CATALOG.Message,
			Description: errorMsg,
		}, err)
	}
	return ParseCatalog(file)
}

// ParseCatalog builds a registry from YAML catalog content. Environment variables are expanded.
func ParseCatalog(content []byte) (*ConsentCategoryRegistry, error) {

	expanded := os.ExpandEnv(string(content))

	var catalog catalogFile
	if err := yaml.UnmarshalStrict([]byte(expanded), &catalog); err != nil {
		errorMsg := "Failed to parse consent catalog."
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LOAD_CONSENT_CATALOG.Code,
			Message:     errors2.LOAD_CONSENT_CATALOG.Message,
			Description: errorMsg,
		}, err)
	}

	reg, err := NewConsentCategoryRegistry(catalog.Categories)
	if err != nil {
		return nil, err
	}
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   "consent-manager",
		InitiatorType: log.InitiatorTypeSystem,
		TargetID:      "catalog",
		TargetType:    log.TargetTypeConsentCategory,
		ActionID:      log.ActionLoadConsentCatalog,
		Data:          map[string]interface{}{"categories": len(catalog.Categories)},
	})
	return reg, nil
}
