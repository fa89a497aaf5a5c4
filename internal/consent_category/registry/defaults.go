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

import "github.com/wso2/identity-consent-manager/internal/consent_category/model"

const (
	NecessaryCategory = "necessary"
	AnalyticsCategory = "analytics"
	MarketingCategory = "marketing"
)

// DefaultCategories returns the stock catalog.
func DefaultCategories() []model.ConsentCategory {
	return []model.ConsentCategory{
		{
			CategoryIdentifier: NecessaryCategory,
			CategoryName:       "Necessary",
			Description:        "Essential cookies that enable basic functionality and security features.",
			Required:           true,
			SignalFlags:        []model.SignalFlag{model.AdStorage, model.AnalyticsStorage},
			Cookies: []model.CookieDeclaration{
				{
					Name:     "_GRECAPTCHA",
					Duration: "6 months",
					Description: "Google Recaptcha service sets this cookie to identify bots to protect the website " +
						"against malicious spam attacks.",
				},
				{
					Name:        "XSRF-TOKEN",
					Duration:    "2 hours",
					Description: "This cookie enhances visitor browsing security by preventing cross-site request forgery.",
				},
				{
					Name:        "__cf_bm",
					Duration:    "1 hour",
					Description: "This cookie, set by Cloudflare, is used to support Cloudflare Bot Management.",
				},
				{
					Name:        "__cfruid",
					Duration:    "session",
					Description: "Cloudflare sets this cookie to identify trusted web traffic.",
				},
				{
					Name:     "__Secure-ENID",
					Duration: "1 year 1 month",
					Description: "The __Secure-ENID cookie is a type of secure cookie used for authentication and to " +
						"ensure the security of user sessions.",
				},
			},
		},
		{
			CategoryIdentifier: AnalyticsCategory,
			CategoryName:       "Analytics",
			Description:        "Cookies that help us understand how visitors interact with our website.",
			SignalFlags:        []model.SignalFlag{model.AnalyticsStorage},
			Cookies: []model.CookieDeclaration{
				{
					Name:     "ajs_anonymous_id",
					Duration: "Never Expires",
					Description: "This cookie is set by Segment to count the number of people who visit a certain site " +
						"by tracking if they have visited before.",
				},
				{
					Name:     "ajs_user_id",
					Duration: "Never Expires",
					Description: "This cookie is set by Segment to help track visitor usage, events, target marketing, " +
						"and also measure application performance and stability.",
				},
			},
		},
		{
			CategoryIdentifier: MarketingCategory,
			CategoryName:       "Marketing",
			Description:        "Cookies used to track visitors across websites to display relevant advertisements.",
			SignalFlags:        []model.SignalFlag{model.AdStorage, model.AdUserData, model.AdPersonalization},
			Cookies: []model.CookieDeclaration{
				{
					Name:     "m",
					Duration: "2 years",
					Description: "Stripe sets this cookie for fraud prevention purposes. It identifies the device used " +
						"to access the website, allowing the website to be formatted accordingly.",
				},
			},
		},
	}
}

// NewDefaultRegistry builds a registry over DefaultCategories.
func NewDefaultRegistry() *ConsentCategoryRegistry {
	reg, err := NewConsentCategoryRegistry(DefaultCategories())
	if err != nil {
		panic(err)
	}
	return reg
}
